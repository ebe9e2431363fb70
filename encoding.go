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

// Node type prefixes of the canonical encoding. The hash of a node is
// never serialized; it is recomputed from the payload on decode.
const (
	valueNodePrefix             byte = iota // value bytes follow, no length prefix
	innerNodePrefix                         // left hash || right hash
	innerNodeRightDefaultPrefix             // same layout, right child is default
	innerNodeLeftDefaultPrefix              // same layout, left child is default
)

// Encode returns the canonical serialization of the leaf: the value node
// prefix followed by the raw value bytes.
func (n *ValueNode) Encode() []byte {
	buf := make([]byte, 0, 1+len(n.value))
	buf = append(buf, valueNodePrefix)
	return append(buf, n.value...)
}

// Encode returns the canonical serialization of the inner node: a prefix
// marking which child, if any, is default, followed by both child hashes.
func (n *InnerNode) Encode() []byte {
	prefix := innerNodePrefix
	if n.right.IsDefault() {
		prefix = innerNodeRightDefaultPrefix
	}
	if n.left.IsDefault() {
		prefix = innerNodeLeftDefaultPrefix
	}
	buf := make([]byte, 0, 1+len(n.left.hash)+len(n.right.hash))
	buf = append(buf, prefix)
	buf = append(buf, n.left.hash...)
	return append(buf, n.right.hash...)
}

// DecodeNode parses a canonical node encoding, recomputing the node hash
// with h. Non-default children of a decoded inner node are referenced as
// database residents.
func DecodeNode(h Hasher, data []byte) (Node, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}
	switch data[0] {
	case valueNodePrefix:
		if len(data) == 1 {
			return nil, ErrEmptyValueBody
		}
		return NewValueNode(h, common.CopyBytes(data[1:])), nil
	case innerNodePrefix, innerNodeRightDefaultPrefix, innerNodeLeftDefaultPrefix:
		hashLen := h.Length()
		if len(data) != 2*hashLen+1 {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, 2*hashLen+1, len(data))
		}
		left := DatabaseHash(common.CopyBytes(data[1 : 1+hashLen]))
		right := DatabaseHash(common.CopyBytes(data[1+hashLen:]))
		switch data[0] {
		case innerNodeRightDefaultPrefix:
			right = DefaultHash(right.hash)
		case innerNodeLeftDefaultPrefix:
			left = DefaultHash(left.hash)
		}
		return NewInnerNode(h, left, right)
	default:
		return nil, fmt.Errorf("%w: %#x", ErrInvalidPrefix, data[0])
	}
}
