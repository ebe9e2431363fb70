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

// IndexTreeDB is an immutable tree addressed by u64 leaf indices instead
// of byte keys. It wraps a TreeDB of depth at most 8 bytes and encodes
// each index big-endian into a key of the tree's width.
type IndexTreeDB struct {
	keyed *TreeDB
}

// IndexTreeDBBuilder assembles an immutable indexed tree.
type IndexTreeDBBuilder struct {
	inner *TreeDBBuilder
}

// NewIndexTreeDBBuilder starts building an immutable indexed tree of
// depth bytes over db, anchored at root.
func NewIndexTreeDBBuilder(db Database, root []byte, depth int, hasher Hasher) (*IndexTreeDBBuilder, error) {
	inner, err := NewTreeDBBuilder(db, root, depth, hasher)
	if err != nil {
		return nil, err
	}
	return &IndexTreeDBBuilder{inner: inner}, nil
}

// WithRecorder attaches a recorder capturing every node the database
// serves during lookups.
func (b *IndexTreeDBBuilder) WithRecorder(r *Recorder) *IndexTreeDBBuilder {
	b.inner.WithRecorder(r)
	return b
}

// Build returns the tree.
func (b *IndexTreeDBBuilder) Build() *IndexTreeDB {
	return &IndexTreeDB{keyed: b.inner.Build()}
}

// Root returns the root hash.
func (t *IndexTreeDB) Root() []byte {
	return t.keyed.Root()
}

// Depth returns the tree depth in bytes.
func (t *IndexTreeDB) Depth() int {
	return t.keyed.Depth()
}

// Value returns the value stored under index, or nil if the slot is
// empty.
func (t *IndexTreeDB) Value(index uint64) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Value(key)
}

// Leaf returns the hash of the leaf under index.
func (t *IndexTreeDB) Leaf(index uint64) ([]byte, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Leaf(key)
}

// Proof returns a (non-)inclusion proof for index.
func (t *IndexTreeDB) Proof(index uint64) (*Proof, error) {
	key, err := KeyFromIndex(index, t.keyed.Depth())
	if err != nil {
		return nil, err
	}
	return t.keyed.Proof(key)
}

// VerifyIndexProof replays the merkle path for a u64 leaf index against a
// tree of depth bytes. See VerifyProof.
func VerifyIndexProof(h Hasher, index uint64, depth int, value []byte, siblings [][]byte, root []byte) (bool, error) {
	key, err := KeyFromIndex(index, depth)
	if err != nil {
		return false, err
	}
	return VerifyProof(h, key, value, siblings, root)
}
