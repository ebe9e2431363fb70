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
	"testing"
)

func TestRecorderReplay(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestIndexTreeMut(t, db, nil, 1)
	for _, kv := range []struct {
		index uint64
		value []byte
	}{
		{0, []byte("flip")},
		{2, []byte("flop")},
		{8, []byte("flap")},
		{9, []byte("flup")},
	} {
		if _, err := tree.Insert(kv.index, kv.value); err != nil {
			t.Fatalf("error inserting: %v", err)
		}
	}
	tree.Commit()
	if _, err := tree.Remove(0); err != nil {
		t.Fatalf("error removing: %v", err)
	}
	if _, err := tree.Remove(9); err != nil {
		t.Fatalf("error removing: %v", err)
	}
	root := tree.Root()

	recorder := NewRecorder()
	builder, err := NewIndexTreeDBBuilder(db, root, 1, testHasher)
	if err != nil {
		t.Fatalf("error building index tree: %v", err)
	}
	read := builder.WithRecorder(recorder).Build()

	indices := []uint64{0, 2, 8, 9}
	recorded := make([][]byte, len(indices))
	for i, index := range indices {
		value, err := read.Value(index)
		if err != nil {
			t.Fatalf("error reading %d: %v", index, err)
		}
		recorded[i] = value
	}

	storageProof := recorder.DrainStorageProof()
	proofDB, err := storageProof.IntoMemoryDB(testHasher)
	if err != nil {
		t.Fatalf("error materializing storage proof: %v", err)
	}

	replayBuilder, err := NewIndexTreeDBBuilder(proofDB, root, 1, testHasher)
	if err != nil {
		t.Fatalf("error building replay tree: %v", err)
	}
	replay := replayBuilder.Build()
	for i, index := range indices {
		value, err := replay.Value(index)
		if err != nil {
			t.Fatalf("recorded path %d failed on replay: %v", index, err)
		}
		if !bytes.Equal(value, recorded[i]) {
			t.Fatalf("replay of %d returned %q, expected %q", index, value, recorded[i])
		}
	}
}

func TestRecorderDrainResets(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestTreeMut(t, db, nil, 1)
	if _, err := tree.Insert([]byte{1}, []byte("flip")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	root := tree.Root()

	recorder := NewRecorder()
	builder, err := NewTreeDBBuilder(db, root, 1, testHasher)
	if err != nil {
		t.Fatalf("error building tree: %v", err)
	}
	read := builder.WithRecorder(recorder).Build()
	if _, err := read.Value([]byte{1}); err != nil {
		t.Fatalf("error reading: %v", err)
	}

	first := recorder.DrainStorageProof()
	if len(first.Encodings()) == 0 {
		t.Fatal("nothing recorded")
	}
	second := recorder.DrainStorageProof()
	if len(second.Encodings()) != 0 {
		t.Fatalf("drain left %d nodes behind", len(second.Encodings()))
	}
}

func TestRecorderIdempotentPerNode(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	tree := newTestTreeMut(t, db, nil, 1)
	if _, err := tree.Insert([]byte{1}, []byte("flip")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}
	root := tree.Root()

	recorder := NewRecorder()
	builder, err := NewTreeDBBuilder(db, root, 1, testHasher)
	if err != nil {
		t.Fatalf("error building tree: %v", err)
	}
	read := builder.WithRecorder(recorder).Build()

	// The same lookup twice records each node once.
	for i := 0; i < 2; i++ {
		if _, err := read.Value([]byte{1}); err != nil {
			t.Fatalf("error reading: %v", err)
		}
	}
	if got, want := len(recorder.nodes), db.Len(); got != want {
		t.Fatalf("recorded %d nodes, expected %d", got, want)
	}
}

func TestRecorderSkipsOverlay(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	recorder := NewRecorder()
	builder, err := NewTreeDBMutBuilder(db, nil, 1, testHasher)
	if err != nil {
		t.Fatalf("error building mutable tree: %v", err)
	}
	tree := builder.WithRecorder(recorder).Build()
	if _, err := tree.Insert([]byte{1}, []byte("flip")); err != nil {
		t.Fatalf("error inserting: %v", err)
	}

	// Reads of pending state are served by the overlay and the null
	// nodes; nothing came from the database.
	if _, err := tree.Value([]byte{1}); err != nil {
		t.Fatalf("error reading: %v", err)
	}
	if len(recorder.nodes) != 0 {
		t.Fatalf("overlay reads recorded %d nodes", len(recorder.nodes))
	}

	// Post-commit the path is database resident and gets recorded.
	tree.Commit()
	if _, err := tree.Value([]byte{1}); err != nil {
		t.Fatalf("error reading: %v", err)
	}
	if len(recorder.nodes) == 0 {
		t.Fatal("database reads were not recorded")
	}
}

func TestStorageProofRejectsCorruptNode(t *testing.T) {
	t.Parallel()

	proof := NewStorageProof([][]byte{{0x04, 0xff}})
	if _, err := proof.IntoMemoryDB(testHasher); err == nil {
		t.Fatal("corrupt encoding accepted")
	}
}
