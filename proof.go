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
)

// Proof is an authenticated (non-)inclusion proof for a single key. Value
// is nil for an absent key; supplying the empty value to VerifyProof then
// proves non-inclusion. Siblings holds one hash per tree level, ordered
// from the sibling of the leaf up to the sibling below the root.
type Proof struct {
	Value    []byte
	Root     []byte
	Siblings [][]byte
}

// VerifyProof replays the merkle path for key from the hash of value
// through the sibling hashes and reports whether it reproduces root. It is
// stateless: no database access is needed. The tree depth is taken from
// the key width.
func VerifyProof(h Hasher, key []byte, value []byte, siblings [][]byte, root []byte) (bool, error) {
	k, err := NewKey(key, len(key))
	if err != nil {
		return false, err
	}
	bits := len(key) * 8
	if len(siblings) != bits {
		return false, fmt.Errorf("%w: expected %d siblings, got %d", ErrInvalidLength, bits, len(siblings))
	}
	hash := h.Hash(value)
	for i := bits - 1; i >= 0; i-- {
		bit, err := k.Bit(i)
		if err != nil {
			return false, err
		}
		sibling := siblings[bits-1-i]
		if bit == 0 {
			hash = hashChildren(h, hash, sibling)
		} else {
			hash = hashChildren(h, sibling, hash)
		}
	}
	return bytes.Equal(hash, root), nil
}
