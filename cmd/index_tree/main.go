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

// Demonstrates a u64-indexed tree: insert, remove, commit and read back
// through a fresh immutable tree over the same database.
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

	builder, err := merkledb.NewIndexTreeDBMutBuilder(db, nil, treeDepth, hasher)
	if err != nil {
		panic(err)
	}
	tree := builder.Build()

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
			panic(err)
		}
	}
	tree.Commit()
	fmt.Printf("root hash: %x\n", tree.Root())

	if _, err := tree.Remove(0); err != nil {
		panic(err)
	}
	if _, err := tree.Remove(9); err != nil {
		panic(err)
	}
	tree.Commit()
	fmt.Printf("root hash: %x\n", tree.Root())

	readBuilder, err := merkledb.NewIndexTreeDBBuilder(db, tree.Root(), treeDepth, hasher)
	if err != nil {
		panic(err)
	}
	read := readBuilder.Build()

	for _, index := range []uint64{0, 2, 8, 9} {
		value, err := read.Value(index)
		if err != nil {
			panic(err)
		}
		printData(value)
	}
}

func printData(data []byte) {
	if data == nil {
		fmt.Println("data: None")
		return
	}
	fmt.Printf("data: %q\n", data)
}
