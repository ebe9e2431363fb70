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

import "errors"

// Data resolution errors.
var (
	// ErrDatabaseDataNotFound is returned when a node referenced from the
	// tree is missing from the backing database.
	ErrDatabaseDataNotFound = errors.New("data not found in database")

	// ErrInMemoryDataNotFound is returned when a node referenced from the
	// tree is missing from the in-memory overlay.
	ErrInMemoryDataNotFound = errors.New("data not found in memory")

	// ErrInMemoryUnsupported is returned when an immutable tree encounters
	// an in-memory node reference; only mutable trees carry an overlay.
	ErrInMemoryUnsupported = errors.New("in-memory references unsupported on immutable tree")

	// ErrNullNodeDataNotFound is returned when a default node reference
	// cannot be resolved against the precomputed null nodes. It indicates
	// a mismatch between the hasher and the tree state.
	ErrNullNodeDataNotFound = errors.New("null node not found")
)

// Node codec errors.
var (
	ErrNoData                    = errors.New("no data to decode")
	ErrEmptyValueBody            = errors.New("empty value node body")
	ErrInvalidPrefix             = errors.New("invalid node prefix")
	ErrInvalidLength             = errors.New("invalid node encoding length")
	ErrHashDecodeFailed          = errors.New("hash decode failed")
	ErrInconsistentDefaultHashes = errors.New("inconsistent default hashes")
	ErrUnexpectedNodeShape       = errors.New("unexpected node shape")
)

// Configuration and key errors.
var (
	ErrDepthTooLarge        = errors.New("tree depth too large")
	ErrIncorrectKeySize     = errors.New("incorrect key size")
	ErrBitIndexOutOfBounds  = errors.New("bit index out of bounds")
	ErrLeafIndexOutOfBounds = errors.New("leaf index out of bounds")
)
