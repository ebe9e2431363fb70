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
	"math"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// TreeDB is an immutable sparse merkle tree bound to a backing database
// and a root hash. It serves authenticated reads; all mutation goes
// through TreeDBMut.
type TreeDB struct {
	db        Database
	hasher    Hasher
	depth     int
	root      []byte
	rootBase  NodeHash
	nullNodes map[string]Node
	recorder  *Recorder
}

// TreeDBBuilder assembles an immutable tree.
type TreeDBBuilder struct {
	tree *TreeDB
}

// NewTreeDBBuilder starts building an immutable tree of depth bytes over
// db, anchored at root. A zero or empty root denotes the empty tree.
func NewTreeDBBuilder(db Database, root []byte, depth int, hasher Hasher) (*TreeDBBuilder, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	nodes, nullRoot := nullNodes(hasher, depth*8)
	tree := &TreeDB{
		db:        db,
		hasher:    hasher,
		depth:     depth,
		root:      common.CopyBytes(root),
		rootBase:  rootHandle(root, nullRoot),
		nullNodes: nodes,
	}
	if tree.rootBase.IsDefault() {
		tree.root = common.CopyBytes(nullRoot)
	}
	return &TreeDBBuilder{tree: tree}, nil
}

// WithRecorder attaches a recorder capturing every node the database
// serves during lookups.
func (b *TreeDBBuilder) WithRecorder(r *Recorder) *TreeDBBuilder {
	b.tree.recorder = r
	return b
}

// Build returns the tree.
func (b *TreeDBBuilder) Build() *TreeDB {
	return b.tree
}

// Root returns the root hash.
func (t *TreeDB) Root() []byte {
	return common.CopyBytes(t.root)
}

// Depth returns the tree depth in bytes; keys are Depth() bytes wide.
func (t *TreeDB) Depth() int {
	return t.depth
}

func (t *TreeDB) lookup() *lookup {
	return &lookup{db: t.db, hasher: t.hasher, nullNodes: t.nullNodes, recorder: t.recorder}
}

// Value returns the value stored under key, or nil if the key is empty.
func (t *TreeDB) Value(key []byte) ([]byte, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	leaf, err := t.lookup().leaf(t.rootBase, k, nil)
	if err != nil {
		return nil, err
	}
	return leafValue(leaf), nil
}

// Values resolves several keys in one call. Lookups run concurrently when
// no recorder is attached; the backing database must then support
// concurrent reads.
func (t *TreeDB) Values(keys [][]byte) ([][]byte, error) {
	values := make([][]byte, len(keys))
	if t.recorder != nil {
		for i, key := range keys {
			value, err := t.Value(key)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}
	var group errgroup.Group
	for i, key := range keys {
		i, key := i, key
		group.Go(func() error {
			value, err := t.Value(key)
			values[i] = value
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// Leaf returns the hash of the leaf under key. Empty slots hash to the
// digest of the empty byte string.
func (t *TreeDB) Leaf(key []byte) ([]byte, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	leaf, err := t.lookup().leaf(t.rootBase, k, nil)
	if err != nil {
		return nil, err
	}
	return common.CopyBytes(leaf.Hash()), nil
}

// Proof returns a (non-)inclusion proof for key with one sibling hash per
// tree level, ordered leaf level first.
func (t *TreeDB) Proof(key []byte) (*Proof, error) {
	k, err := NewKey(key, t.depth)
	if err != nil {
		return nil, err
	}
	return proveKey(t.lookup(), t.rootBase, k, t.Root())
}

// proveKey walks to the leaf collecting sibling hashes and reverses them
// into leaf-first order.
func proveKey(l *lookup, root NodeHash, key Key, rootHash []byte) (*Proof, error) {
	siblings := make([][]byte, 0, len(key)*8)
	leaf, err := l.leaf(root, key, &siblings)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(siblings)-1; i < j; i, j = i+1, j-1 {
		siblings[i], siblings[j] = siblings[j], siblings[i]
	}
	return &Proof{Value: leafValue(leaf), Root: rootHash, Siblings: siblings}, nil
}

// leafValue maps the null leaf to nil, everything else to a copy of its
// bytes.
func leafValue(leaf *ValueNode) []byte {
	if leaf.IsDefault() {
		return nil
	}
	return leaf.Value()
}

// rootHandle classifies an incoming root hash: the zero hash and the null
// root both denote the empty tree.
func rootHandle(root, nullRoot []byte) NodeHash {
	if len(root) == 0 || bytes.Equal(root, make([]byte, len(root))) || bytes.Equal(root, nullRoot) {
		return DefaultHash(nullRoot)
	}
	return DatabaseHash(common.CopyBytes(root))
}

func checkDepth(depth int) error {
	if depth > math.MaxInt/8 {
		return fmt.Errorf("%w: %d bytes, max %d", ErrDepthTooLarge, depth, math.MaxInt/8)
	}
	return nil
}
