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

// Demonstrates read-path recording: lookups against a committed tree are
// captured into a storage proof, which is then materialized into a
// minimal database that can replay the same lookups.
package main

import (
	"fmt"

	merkledb "github.com/frisitano/merkle-tree-db"
)

func main() {
	db := merkledb.NewMemoryDB()
	hasher := merkledb.Sha3Hasher{}

	// The actual bit depth of the tree is 8 * treeDepth.
	const treeDepth = 1

	builder, err := merkledb.NewTreeDBMutBuilder(db, nil, treeDepth, hasher)
	if err != nil {
		panic(err)
	}
	tree := builder.Build()

	data := []struct {
		key   []byte
		value []byte
	}{
		{[]byte{0}, []byte("flip")},
		{[]byte{2}, []byte("flop")},
		{[]byte{8}, []byte("flap")},
		{[]byte{9}, []byte("flup")},
	}
	for _, kv := range data {
		if _, err := tree.Insert(kv.key, kv.value); err != nil {
			panic(err)
		}
	}
	tree.Commit()
	root := tree.Root()

	recorder := merkledb.NewRecorder()
	readBuilder, err := merkledb.NewTreeDBBuilder(db, root, treeDepth, hasher)
	if err != nil {
		panic(err)
	}
	read := readBuilder.WithRecorder(recorder).Build()

	for _, kv := range data {
		if _, err := read.Value(kv.key); err != nil {
			panic(err)
		}
	}

	// The recorder has captured the node set behind those lookups; turn
	// it into a minimal standalone database.
	storageProof := recorder.DrainStorageProof()
	proofDB, err := storageProof.IntoMemoryDB(hasher)
	if err != nil {
		panic(err)
	}

	replayBuilder, err := merkledb.NewTreeDBBuilder(proofDB, root, treeDepth, hasher)
	if err != nil {
		panic(err)
	}
	replay := replayBuilder.Build()

	for _, kv := range data {
		value, err := replay.Value(kv.key)
		if err != nil {
			panic(err)
		}
		fmt.Printf("data: %q\n", value)
	}
}
