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

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TreeDBMut is a mutable sparse merkle tree. Inserts and removes mutate a
// refcounted in-memory overlay; database-resident nodes they displace are
// queued on a death row. Commit reconciles both against the backing
// database and publishes the new root.
//
// While a TreeDBMut is live the caller must not mutate the backing
// database through any other path; the reconciliation counts assume the
// tree is the only writer.
type TreeDBMut struct {
	db         Database
	hasher     Hasher
	depth      int
	root       []byte
	rootHandle NodeHash
	overlay    *nodeStorage
	deathRow   map[string]int
	nullNodes  map[string]Node
	nullRoot   []byte
	recorder   *Recorder
}

// TreeDBMutBuilder assembles a mutable tree.
type TreeDBMutBuilder struct {
	tree *TreeDBMut
}

// NewTreeDBMutBuilder starts building a mutable tree of depth bytes over
// db, anchored at root. A zero or empty root denotes the empty tree.
func NewTreeDBMutBuilder(db Database, root []byte, depth int, hasher Hasher) (*TreeDBMutBuilder, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	nodes, nullRoot := nullNodes(hasher, depth*8)
	tree := &TreeDBMut{
		db:         db,
		hasher:     hasher,
		depth:      depth,
		root:       common.CopyBytes(root),
		rootHandle: rootHandle(root, nullRoot),
		overlay:    newNodeStorage(),
		deathRow:   make(map[string]int),
		nullNodes:  nodes,
		nullRoot:   nullRoot,
	}
	if tree.rootHandle.IsDefault() {
		tree.root = common.CopyBytes(nullRoot)
	}
	return &TreeDBMutBuilder{tree: tree}, nil
}

// WithRecorder attaches a recorder capturing every node the database
// serves during lookups.
func (b *TreeDBMutBuilder) WithRecorder(r *Recorder) *TreeDBMutBuilder {
	b.tree.recorder = r
	return b
}

// Build returns the tree.
func (b *TreeDBMutBuilder) Build() *TreeDBMut {
	return b.tree
}

// Root commits any pending changes and returns the resulting root hash.
func (t *TreeDBMut) Root() []byte {
	t.Commit()
	return common.CopyBytes(t.root)
}

// Depth returns the tree depth in bytes; keys are Depth() bytes wide.
func (t *TreeDBMut) Depth() int {
	return t.depth
}

func (t *TreeDBMut) lookup() *lookup {
	return &lookup{db: t.db, hasher: t.hasher, overlay: t.overlay, nullNodes: t.nullNodes, recorder: t.recorder}
}

// Value returns the value stored under key, observing uncommitted writes,
// or nil if the key is empty.
func (t *TreeDBMut) Value(key []byte) ([]byte, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	leaf, err := t.lookup().leaf(t.rootHandle, k, nil)
	if err != nil {
		return nil, err
	}
	return leafValue(leaf), nil
}

// Leaf returns the hash of the leaf under key, observing uncommitted
// writes.
func (t *TreeDBMut) Leaf(key []byte) ([]byte, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	leaf, err := t.lookup().leaf(t.rootHandle, k, nil)
	if err != nil {
		return nil, err
	}
	return common.CopyBytes(leaf.Hash()), nil
}

// Proof returns a (non-)inclusion proof for key over the current,
// possibly uncommitted, state.
func (t *TreeDBMut) Proof(key []byte) (*Proof, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	return proveKey(t.lookup(), t.rootHandle, k, common.CopyBytes(t.rootHandle.Hash()))
}

// Insert writes value under key and returns the previous value, if any.
// The write lands in the overlay; nothing reaches the database until
// Commit. Inserting an empty value is a removal.
func (t *TreeDBMut) Insert(key []byte, value []byte) ([]byte, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	newRoot, old, changed, err := t.insertAt(t.rootHandle, k, common.CopyBytes(value), 0)
	if err != nil {
		return nil, err
	}
	if changed {
		if newRoot.IsDefault() {
			t.rootHandle = DefaultHash(t.nullRoot)
		} else {
			t.rootHandle = InMemoryHash(newRoot.Hash())
		}
	}
	return old, nil
}

// Remove deletes the value under key and returns it, if any.
func (t *TreeDBMut) Remove(key []byte) ([]byte, error) {
	return t.Insert(key, nil)
}

// insertAt recursively descends to the leaf addressed by key, rebuilding
// the ancestor chain bottom-up. Every level inserts its replacement node
// into the overlay (unless default) and retires the node it replaces, so
// that commit sees exactly one insertion and one retirement per change.
func (t *TreeDBMut) insertAt(current NodeHash, key Key, value []byte, depth int) (Node, []byte, bool, error) {
	if depth == t.depth*8 {
		leaf := NewValueNode(t.hasher, value)
		var old []byte
		if !current.IsDefault() {
			n, err := t.lookup().node(current)
			if err != nil {
				return nil, nil, false, err
			}
			resident, ok := n.(*ValueNode)
			if !ok {
				return nil, nil, false, fmt.Errorf("%w: expected value node, got inner node", ErrUnexpectedNodeShape)
			}
			old = leafValue(resident)
		}
		if bytes.Equal(leaf.Hash(), current.Hash()) {
			return leaf, old, false, nil
		}
		if !leaf.IsDefault() {
			t.overlay.insert(leaf)
		}
		t.removeNode(current)
		return leaf, old, true, nil
	}

	n, err := t.lookup().node(current)
	if err != nil {
		return nil, nil, false, err
	}
	inner, ok := n.(*InnerNode)
	if !ok {
		return nil, nil, false, fmt.Errorf("%w: expected inner node, got value node", ErrUnexpectedNodeShape)
	}
	bit, err := key.Bit(depth)
	if err != nil {
		return nil, nil, false, err
	}
	sel := ChildSelector(bit)
	newChild, old, changed, err := t.insertAt(inner.Child(sel), key, value, depth+1)
	if err != nil {
		return nil, nil, false, err
	}
	if !changed {
		return inner, old, false, nil
	}
	childHandle := InMemoryHash(newChild.Hash())
	if newChild.IsDefault() {
		childHandle = DefaultHash(newChild.Hash())
	}
	updated, err := inner.WithChild(t.hasher, sel, childHandle)
	if err != nil {
		return nil, nil, false, err
	}
	if !updated.IsDefault() {
		t.overlay.insert(updated)
	}
	t.removeNode(current)
	return updated, old, true, nil
}

// removeNode retires a node reference: overlay nodes lose a count,
// database nodes gain a pending deletion, default nodes need nothing.
func (t *TreeDBMut) removeNode(handle NodeHash) {
	switch handle.loc {
	case locInMemory:
		t.overlay.remove(handle.hash)
	case locDatabase:
		t.deathRow[string(handle.hash)]++
	}
}

// Commit reconciles the overlay and the death row against the backing
// database and publishes the new root. Insertions and pending deletions
// of the same hash cancel count-for-count, so the database refcounts end
// up exactly as if only the net change had been applied. Unrelated trees
// sharing subtrees with this one are therefore unaffected.
func (t *TreeDBMut) Commit() {
	for hash, entry := range t.overlay.drain() {
		inserts := entry.count
		if deletes, ok := t.deathRow[hash]; ok {
			delete(t.deathRow, hash)
			switch {
			case inserts > deletes:
				t.emplace([]byte(hash), entry.node, inserts-deletes)
			case inserts < deletes:
				t.remove([]byte(hash), deletes-inserts)
			}
			continue
		}
		t.emplace([]byte(hash), entry.node, inserts)
	}
	for hash, deletes := range t.deathRow {
		t.remove([]byte(hash), deletes)
	}
	t.deathRow = make(map[string]int)

	t.root = common.CopyBytes(t.rootHandle.Hash())
	if bytes.Equal(t.root, t.nullRoot) {
		t.rootHandle = DefaultHash(t.nullRoot)
	} else {
		t.rootHandle = DatabaseHash(common.CopyBytes(t.root))
	}
}

func (t *TreeDBMut) emplace(hash []byte, n Node, count int) {
	encoded := n.Encode()
	for i := 0; i < count; i++ {
		t.db.Emplace(hash, EmptyPrefix, encoded)
	}
}

func (t *TreeDBMut) remove(hash []byte, count int) {
	for i := 0; i < count; i++ {
		t.db.Remove(hash, EmptyPrefix)
	}
}
