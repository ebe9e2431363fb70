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

package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	merkledb "github.com/frisitano/merkle-tree-db"
)

func main() {
	benchmarkInsertInExisting()
}

func benchmarkInsertInExisting() {
	f, _ := os.Create("cpu.prof")
	g, _ := os.Create("mem.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()
	defer func() { _ = pprof.WriteHeapProfile(g) }()

	// Tree depth in bytes; keys address 8 * depth bits.
	const depth = 4
	// Number of existing leaves in tree
	n := 100000
	// Leaves to be inserted afterwards
	toInsert := 10000
	total := n + toInsert

	keys := make([][]byte, n)
	toInsertKeys := make([][]byte, toInsert)
	value := []byte("value")
	hasher := merkledb.Sha3Hasher{}

	for i := 0; i < 4; i++ {
		// Generate set of keys once
		for j := 0; j < total; j++ {
			key := make([]byte, depth)
			if _, err := rand.Read(key); err != nil {
				panic(err)
			}
			if j < n {
				keys[j] = key
			} else {
				toInsertKeys[j-n] = key
			}
		}
		fmt.Printf("Generated key set %d\n", i)

		// Create tree from same keys multiple times
		for j := 0; j < 5; j++ {
			db := merkledb.NewMemoryDB()
			builder, err := merkledb.NewTreeDBMutBuilder(db, nil, depth, hasher)
			if err != nil {
				panic(err)
			}
			tree := builder.Build()
			for _, k := range keys {
				if _, err := tree.Insert(k, value); err != nil {
					panic(err)
				}
			}
			tree.Commit()

			// Now insert the 10k leaves and measure time
			start := time.Now()
			for _, k := range toInsertKeys {
				if _, err := tree.Insert(k, value); err != nil {
					panic(err)
				}
			}
			tree.Commit()
			elapsed := time.Since(start)
			fmt.Printf("Inserted %d leaves in %v\n", toInsert, elapsed)

			// And measure proof generation over the fresh keys.
			readBuilder, err := merkledb.NewTreeDBBuilder(db, tree.Root(), depth, hasher)
			if err != nil {
				panic(err)
			}
			read := readBuilder.Build()
			start = time.Now()
			for _, k := range toInsertKeys {
				if _, err := read.Proof(k); err != nil {
					panic(err)
				}
			}
			fmt.Printf("Generated %d proofs in %v\n", toInsert, time.Since(start))
		}
	}
}
