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

type nodeLocation int

const (
	locDatabase nodeLocation = iota
	locInMemory
	locDefault
)

// NodeHash is a node hash tagged with the residence of the node it refers
// to: persisted in the backing database, pending in the mutable overlay, or
// the root of an all-default subtree resolved against the null nodes.
type NodeHash struct {
	loc  nodeLocation
	hash []byte
}

// DatabaseHash references a node persisted in the backing database.
func DatabaseHash(hash []byte) NodeHash {
	return NodeHash{loc: locDatabase, hash: hash}
}

// InMemoryHash references a node pending in the mutable overlay.
func InMemoryHash(hash []byte) NodeHash {
	return NodeHash{loc: locInMemory, hash: hash}
}

// DefaultHash references the root of an all-default subtree.
func DefaultHash(hash []byte) NodeHash {
	return NodeHash{loc: locDefault, hash: hash}
}

// Hash returns the referenced node hash.
func (nh NodeHash) Hash() []byte {
	return nh.hash
}

// IsDefault reports whether the reference points at a default subtree.
func (nh NodeHash) IsDefault() bool {
	return nh.loc == locDefault
}

// Node is a tree node: either a ValueNode holding leaf bytes or an
// InnerNode holding two child references.
type Node interface {
	// Hash returns the merkle label of the node.
	Hash() []byte

	// IsDefault reports whether the node is part of the canonical empty
	// tree. Default nodes are never persisted.
	IsDefault() bool

	// Encode returns the canonical serialization of the node.
	Encode() []byte
}

// ValueNode is a leaf. Empty value bytes denote an absent leaf.
type ValueNode struct {
	hash  []byte
	value []byte
}

// NewValueNode hashes value and wraps it as a leaf.
func NewValueNode(h Hasher, value []byte) *ValueNode {
	return &ValueNode{hash: h.Hash(value), value: value}
}

func (n *ValueNode) Hash() []byte {
	return n.hash
}

func (n *ValueNode) IsDefault() bool {
	return len(n.value) == 0
}

// Value returns a copy of the leaf bytes.
func (n *ValueNode) Value() []byte {
	return common.CopyBytes(n.value)
}

// InnerNode is an internal node labelled with the hash of its two child
// hashes.
type InnerNode struct {
	hash  []byte
	left  NodeHash
	right NodeHash
}

// NewInnerNode combines two child references into an inner node. Two
// default children with differing hashes cannot occur in a well-formed
// tree, since both children sit at the same level, and are rejected.
func NewInnerNode(h Hasher, left, right NodeHash) (*InnerNode, error) {
	if left.IsDefault() && right.IsDefault() && !bytes.Equal(left.hash, right.hash) {
		return nil, fmt.Errorf("%w: left %x, right %x", ErrInconsistentDefaultHashes, left.hash, right.hash)
	}
	return &InnerNode{hash: hashChildren(h, left.hash, right.hash), left: left, right: right}, nil
}

func (n *InnerNode) Hash() []byte {
	return n.hash
}

func (n *InnerNode) IsDefault() bool {
	return n.left.IsDefault() && n.right.IsDefault()
}

// Child returns the referenced child.
func (n *InnerNode) Child(sel ChildSelector) NodeHash {
	if sel == Left {
		return n.left
	}
	return n.right
}

// WithChild returns a copy of the node with the selected child replaced
// and the hash recomputed.
func (n *InnerNode) WithChild(h Hasher, sel ChildSelector, child NodeHash) (*InnerNode, error) {
	if sel == Left {
		return NewInnerNode(h, child, n.right)
	}
	return NewInnerNode(h, n.left, child)
}

func hashChildren(h Hasher, left, right []byte) []byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	return h.Hash(buf)
}

// nullNodes precomputes the canonical node for the empty subtree at every
// level of a tree of the given bit depth, keyed by hash. The second return
// value is the hash of the empty tree itself.
func nullNodes(h Hasher, bits int) (map[string]Node, []byte) {
	nodes := make(map[string]Node, bits+1)
	hash := h.Hash(nil)
	nodes[string(hash)] = &ValueNode{hash: hash}
	for i := 0; i < bits; i++ {
		child := DefaultHash(hash)
		next := hashChildren(h, hash, hash)
		nodes[string(next)] = &InnerNode{hash: next, left: child, right: child}
		hash = next
	}
	return nodes, hash
}
