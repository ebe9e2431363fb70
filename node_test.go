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
	"errors"
	"testing"
)

func TestNullNodeLadder(t *testing.T) {
	t.Parallel()

	const bits = 16
	nodes, top := nullNodes(testHasher, bits)
	if len(nodes) != bits+1 {
		t.Fatalf("ladder has %d entries, expected %d", len(nodes), bits+1)
	}

	hash := testHasher.Hash(nil)
	leaf, ok := nodes[string(hash)].(*ValueNode)
	if !ok || !leaf.IsDefault() {
		t.Fatalf("ladder bottom is not the null leaf: %v", nodes[string(hash)])
	}

	for i := 0; i < bits; i++ {
		next := testHasher.Hash(append(append([]byte{}, hash...), hash...))
		inner, ok := nodes[string(next)].(*InnerNode)
		if !ok {
			t.Fatalf("ladder level %d missing", i+1)
		}
		if !inner.Child(Left).IsDefault() || !inner.Child(Right).IsDefault() {
			t.Fatalf("ladder level %d has non-default children", i+1)
		}
		if !bytes.Equal(inner.Child(Left).Hash(), hash) {
			t.Fatalf("ladder level %d child hash mismatch", i+1)
		}
		hash = next
	}
	if !bytes.Equal(hash, top) {
		t.Fatalf("ladder top %x does not match computed %x", top, hash)
	}
}

func TestInconsistentDefaultHashes(t *testing.T) {
	t.Parallel()

	a := testHasher.Hash([]byte("a"))
	b := testHasher.Hash([]byte("b"))
	if _, err := NewInnerNode(testHasher, DefaultHash(a), DefaultHash(b)); !errors.Is(err, ErrInconsistentDefaultHashes) {
		t.Fatalf("invalid error, got %v, expected %v", err, ErrInconsistentDefaultHashes)
	}
	if _, err := NewInnerNode(testHasher, DefaultHash(a), DefaultHash(a)); err != nil {
		t.Fatalf("matching default children rejected: %v", err)
	}
}

func TestInnerNodeHash(t *testing.T) {
	t.Parallel()

	left := testHasher.Hash([]byte("l"))
	right := testHasher.Hash([]byte("r"))
	node := mustInnerNode(t, DatabaseHash(left), DatabaseHash(right))

	want := testHasher.Hash(append(append([]byte{}, left...), right...))
	if !bytes.Equal(node.Hash(), want) {
		t.Fatalf("hash mismatch %x != %x", node.Hash(), want)
	}

	// Replacing a child recomputes the label.
	other := testHasher.Hash([]byte("o"))
	updated, err := node.WithChild(testHasher, Right, DatabaseHash(other))
	if err != nil {
		t.Fatalf("error replacing child: %v", err)
	}
	want = testHasher.Hash(append(append([]byte{}, left...), other...))
	if !bytes.Equal(updated.Hash(), want) {
		t.Fatalf("hash not recomputed: %x != %x", updated.Hash(), want)
	}
	if !bytes.Equal(node.Child(Right).Hash(), right) {
		t.Fatal("WithChild mutated the receiver")
	}
}

func TestValueNodeDefault(t *testing.T) {
	t.Parallel()

	if !NewValueNode(testHasher, nil).IsDefault() {
		t.Fatal("empty value node should be default")
	}
	if NewValueNode(testHasher, []byte("x")).IsDefault() {
		t.Fatal("non-empty value node should not be default")
	}
}
