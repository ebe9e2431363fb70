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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// lookup resolves node references against the three data sources a tree
// reads from: the backing database, the mutable overlay (nil on immutable
// trees) and the precomputed null nodes.
type lookup struct {
	db        Database
	hasher    Hasher
	overlay   *nodeStorage
	nullNodes map[string]Node
	recorder  *Recorder
}

// node resolves a reference to a node according to its residence. Nodes
// served by the database are recorded if a recorder is attached.
func (l *lookup) node(handle NodeHash) (Node, error) {
	switch handle.loc {
	case locDatabase:
		data, ok := l.db.Get(handle.hash, EmptyPrefix)
		if !ok {
			return nil, fmt.Errorf("%w: %x", ErrDatabaseDataNotFound, handle.hash)
		}
		n, err := DecodeNode(l.hasher, data)
		if err != nil {
			return nil, err
		}
		if l.recorder != nil {
			l.recorder.record(n)
		}
		return n, nil
	case locInMemory:
		if l.overlay == nil {
			return nil, ErrInMemoryUnsupported
		}
		n, ok := l.overlay.get(handle.hash)
		if !ok {
			return nil, fmt.Errorf("%w: %x", ErrInMemoryDataNotFound, handle.hash)
		}
		return n, nil
	default:
		n, ok := l.nullNodes[string(handle.hash)]
		if !ok {
			return nil, fmt.Errorf("%w: %x", ErrNullNodeDataNotFound, handle.hash)
		}
		return n, nil
	}
}

// leaf walks from root to the leaf addressed by key. When siblings is nil
// the walk short-circuits on the first default child, returning the null
// leaf. When siblings is non-nil the sibling hash of every step is pushed
// onto it, root level first, and the walk continues through default
// subtrees so that absent keys still yield complete proofs.
func (l *lookup) leaf(root NodeHash, key Key, siblings *[][]byte) (*ValueNode, error) {
	current := root
	for i := 0; i < len(key)*8; i++ {
		n, err := l.node(current)
		if err != nil {
			return nil, err
		}
		inner, ok := n.(*InnerNode)
		if !ok {
			return nil, fmt.Errorf("%w: expected inner node, got value node", ErrUnexpectedNodeShape)
		}
		bit, err := key.Bit(i)
		if err != nil {
			return nil, err
		}
		sel := ChildSelector(bit)
		if siblings != nil {
			*siblings = append(*siblings, common.CopyBytes(inner.Child(sel.Sibling()).Hash()))
		} else if inner.Child(sel).IsDefault() {
			return NewValueNode(l.hasher, nil), nil
		}
		current = inner.Child(sel)
	}
	n, err := l.node(current)
	if err != nil {
		return nil, err
	}
	leaf, ok := n.(*ValueNode)
	if !ok {
		return nil, fmt.Errorf("%w: expected value node, got inner node", ErrUnexpectedNodeShape)
	}
	return leaf, nil
}
