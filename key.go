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
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ChildSelector identifies one of the two children of an inner node.
type ChildSelector int

const (
	Left ChildSelector = iota
	Right
)

// Sibling returns the selector for the other child.
func (c ChildSelector) Sibling() ChildSelector {
	if c == Left {
		return Right
	}
	return Left
}

// Key is a fixed-width byte string addressing a leaf of the tree. A key of
// D bytes addresses a tree of D*8 bits: bit 0 is the most significant bit
// of byte 0 and selects the child of the root, bit D*8-1 is the least
// significant bit of the last byte and selects the leaf.
type Key []byte

// NewKey validates that data is exactly depth bytes wide and returns it as
// a Key. The bytes are copied.
func NewKey(data []byte, depth int) (Key, error) {
	if len(data) != depth {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrIncorrectKeySize, depth, len(data))
	}
	return Key(common.CopyBytes(data)), nil
}

// KeyFromIndex encodes a u64 leaf index as a big-endian key of depth bytes.
// Indices that do not fit in depth bytes are rejected.
func KeyFromIndex(index uint64, depth int) (Key, error) {
	if depth < 8 && index >= uint64(1)<<(8*depth) {
		return nil, fmt.Errorf("%w: index %d exceeds max %d", ErrLeafIndexOutOfBounds, index, uint64(1)<<(8*depth)-1)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], index)
	if depth <= 8 {
		return Key(common.CopyBytes(buf[8-depth:])), nil
	}
	key := make([]byte, depth)
	copy(key[depth-8:], buf[:])
	return Key(key), nil
}

// Bit returns the i-th bit of the key, MSB first.
func (k Key) Bit(i int) (uint8, error) {
	if i >= len(k)*8 {
		return 0, fmt.Errorf("%w: index %d, max %d", ErrBitIndexOutOfBounds, i, len(k)*8-1)
	}
	return (k[i/8] >> (7 - i%8)) & 1, nil
}

// Bits returns an iterator over the bits of the key, MSB first.
func (k Key) Bits() *BitIterator {
	return &BitIterator{key: k}
}

// BitIterator walks the bits of a key from the most significant bit of the
// first byte down.
type BitIterator struct {
	key Key
	pos int
}

// Next returns the next bit, or false once the key is exhausted.
func (it *BitIterator) Next() (uint8, bool) {
	if it.pos >= len(it.key)*8 {
		return 0, false
	}
	bit, _ := it.key.Bit(it.pos)
	it.pos++
	return bit, true
}
