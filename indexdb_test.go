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

func newTestIndexTreeMut(t *testing.T, db Database, root []byte, depth int) *IndexTreeDBMut {
	t.Helper()
	builder, err := NewIndexTreeDBMutBuilder(db, root, depth, testHasher)
	if err != nil {
		t.Fatalf("error building mutable index tree: %v", err)
	}
	return builder.Build()
}

func TestIndexTreeInsertRemove(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestIndexTreeMut(t, db, nil, 1)

	data := []struct {
		index uint64
		value []byte
	}{
		{0, []byte("flip")},
		{2, []byte("flop")},
		{8, []byte("flap")},
		{9, []byte("flup")},
	}
	for _, kv := range data {
		if _, err := tree.Insert(kv.index, kv.value); err != nil {
			t.Fatalf("error inserting %d: %v", kv.index, err)
		}
	}
	tree.Commit()
	root1 := tree.Root()

	if _, err := tree.Remove(0); err != nil {
		t.Fatalf("error removing: %v", err)
	}
	if _, err := tree.Remove(9); err != nil {
		t.Fatalf("error removing: %v", err)
	}
	tree.Commit()
	root2 := tree.Root()

	if bytes.Equal(root1, root2) {
		t.Fatal("root unchanged after removals")
	}

	builder, err := NewIndexTreeDBBuilder(db, root2, 1, testHasher)
	if err != nil {
		t.Fatalf("error building index tree: %v", err)
	}
	read := builder.Build()

	value, err := read.Value(2)
	if err != nil {
		t.Fatalf("error reading: %v", err)
	}
	if !bytes.Equal(value, []byte("flop")) {
		t.Fatalf("got %q, expected %q", value, "flop")
	}
	for _, index := range []uint64{0, 9} {
		value, err := read.Value(index)
		if err != nil {
			t.Fatalf("error reading: %v", err)
		}
		if value != nil {
			t.Fatalf("removed index %d returned %q", index, value)
		}
	}

	// The same net key set committed in one session reproduces the root.
	fresh := newTestIndexTreeMut(t, NewMemoryDB(), nil, 1)
	if _, err := fresh.Insert(2, []byte("flop")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if _, err := fresh.Insert(8, []byte("flap")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	if !bytes.Equal(fresh.Root(), root2) {
		t.Fatalf("fresh root %x does not match %x", fresh.Root(), root2)
	}
}

func TestIndexTreeProof(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestIndexTreeMut(t, db, nil, 1)
	if _, err := tree.Insert(3, []byte("flop")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	root := tree.Root()

	proof, err := tree.Proof(3)
	if err != nil {
		t.Fatalf("error proving: %v", err)
	}
	ok, err := VerifyIndexProof(testHasher, 3, 1, []byte("flop"), proof.Siblings, root)
	if err != nil {
		t.Fatalf("error verifying: %v", err)
	}
	if !ok {
		t.Fatal("valid index proof rejected")
	}

	leaf, err := tree.Leaf(3)
	if err != nil {
		t.Fatalf("error reading leaf: %v", err)
	}
	if !bytes.Equal(leaf, testHasher.Hash([]byte("flop"))) {
		t.Fatalf("leaf hash %x is not the value hash", leaf)
	}
}

func TestIndexTreeOutOfBounds(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestIndexTreeMut(t, db, nil, 1)
	if _, err := tree.Insert(256, []byte("too big")); !errors.Is(err, ErrLeafIndexOutOfBounds) {
		t.Fatalf("invalid error, got %v, expected %v", err, ErrLeafIndexOutOfBounds)
	}

	builder, err := NewIndexTreeDBBuilder(db, tree.Root(), 1, testHasher)
	if err != nil {
		t.Fatalf("error building index tree: %v", err)
	}
	if _, err := builder.Build().Value(1 << 30); !errors.Is(err, ErrLeafIndexOutOfBounds) {
		t.Fatalf("invalid error, got %v, expected %v", err, ErrLeafIndexOutOfBounds)
	}
}
