// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package merkledb

// IndexTreeDBMut is a mutable tree addressed by u64 leaf indices. It
// wraps a TreeDBMut of depth at most 8 bytes.
type IndexTreeDBMut struct {
	keyed *TreeDBMut
}

// IndexTreeDBMutBuilder assembles a mutable indexed tree.
type IndexTreeDBMutBuilder struct {
	inner *TreeDBMutBuilder
}

// NewIndexTreeDBMutBuilder starts building a mutable indexed tree of
// depth bytes over db, anchored at root.
func NewIndexTreeDBMutBuilder(db Database, root []byte, depth int, hasher Hasher) (*IndexTreeDBMutBuilder, error) {
	inner, err := NewTreeDBMutBuilder(db, root, depth, hasher)
	if err != nil {
		return nil, err
	}
	return &IndexTreeDBMutBuilder{inner: inner}, nil
}

// WithRecorder attaches a recorder capturing every node the database
// serves during lookups.
func (b *IndexTreeDBMutBuilder) WithRecorder(r *Recorder) *IndexTreeDBMutBuilder {
	b.inner.WithRecorder(r)
	return b
}

// Build returns the tree.
func (b *IndexTreeDBMutBuilder) Build() *IndexTreeDBMut {
	return &IndexTreeDBMut{keyed: b.inner.Build()}
}

// Root commits any pending changes and returns the resulting root hash.
func (t *IndexTreeDBMut) Root() []byte {
	return t.keyed.Root()
}

// Depth returns the tree depth in bytes.
func (t *IndexTreeDBMut) Depth() int {
	return t.keyed.Depth()
}

// Value returns the value stored under index, observing uncommitted
// writes.
func (t *IndexTreeDBMut) Value(index uint64) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Value(key)
}

// Leaf returns the hash of the leaf under index, observing uncommitted
// writes.
func (t *IndexTreeDBMut) Leaf(index uint64) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Leaf(key)
}

// Proof returns a (non-)inclusion proof for index over the current,
// possibly uncommitted, state.
func (t *IndexTreeDBMut) Proof(index uint64) (*Proof, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Proof(key)
}

// Insert writes value under index and returns the previous value, if
// any.
func (t *IndexTreeDBMut) Insert(index uint64, value []byte) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Insert(key, value)
}

// Remove deletes the value under index and returns it, if any.
func (t *IndexTreeDBMut) Remove(index uint64) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Remove(key)
}

// Commit reconciles pending changes against the backing database and
// publishes the new root.
func (t *IndexTreeDBMut) Commit() {
	t.keyed.Commit()
}
