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

// Package merkledb implements a persistent sparse merkle tree over any
// key-value database backend. Trees are stored as fixed-depth binary merkle
// trees keyed by the bits of the caller's key, which allows for efficient
// lookups, updates and persistence. The library is generic over the hasher
// used and the depth of the tree, so hash functions that are friendly to a
// proving circuit (e.g. Poseidon, Rescue-Prime) can be plugged in alongside
// the usual byte hashers. Both keyed (addressable) trees and u64-indexed
// trees (max depth 8 bytes) are supported.
package merkledb

// Hasher abstracts the cryptographic hash function used to label tree
// nodes. Implementations must be deterministic and produce digests of a
// fixed length.
type Hasher interface {
	// Hash returns the digest of data.
	Hash(data []byte) []byte

	// Length returns the digest size in bytes.
	Length() int
}

// Database is the content-addressed byte store the tree persists into. It
// is expected to reference count emplacements so that distinct trees can
// share subtrees: two Emplace calls for the same hash must be undone by two
// Remove calls before the data disappears.
//
// The tree passes EmptyPrefix on every call; the prefix argument exists so
// that stores which namespace their keys can be used unmodified.
type Database interface {
	// Get returns the raw bytes stored under hash, if any.
	Get(hash []byte, prefix []byte) ([]byte, bool)

	// Emplace stores value under hash, or increments its reference count
	// if already present.
	Emplace(hash []byte, prefix []byte, value []byte)

	// Remove decrements the reference count of hash, deleting the entry
	// when it reaches zero.
	Remove(hash []byte, prefix []byte)
}

// EmptyPrefix is the database prefix used for all tree nodes.
var EmptyPrefix = []byte{}
