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
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type memEntry struct {
	value []byte
	count int
}

// MemoryDB is a reference-counted in-memory Database. Emplacing a hash
// twice requires removing it twice before the data disappears, which is
// the contract the tree's commit reconciliation relies on. Reads are safe
// to issue concurrently.
type MemoryDB struct {
	mu   sync.RWMutex
	data map[string]memEntry
}

// NewMemoryDB returns an empty database.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: make(map[string]memEntry)}
}

// Get returns the bytes stored under hash, if present.
func (db *MemoryDB) Get(hash []byte, prefix []byte) ([]byte, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	entry, ok := db.data[dbKey(hash, prefix)]
	if !ok || entry.count <= 0 {
		return nil, false
	}
	return common.CopyBytes(entry.value), true
}

// Emplace stores value under hash, incrementing its reference count if
// already present.
func (db *MemoryDB) Emplace(hash []byte, prefix []byte, value []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := dbKey(hash, prefix)
	entry, ok := db.data[key]
	if !ok {
		entry = memEntry{value: common.CopyBytes(value)}
	}
	entry.count++
	db.data[key] = entry
}

// Remove decrements the reference count of hash, deleting the entry when
// it reaches zero. Removing an absent hash is a no-op.
func (db *MemoryDB) Remove(hash []byte, prefix []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := dbKey(hash, prefix)
	entry, ok := db.data[key]
	if !ok {
		return
	}
	entry.count--
	if entry.count <= 0 {
		delete(db.data, key)
		return
	}
	db.data[key] = entry
}

// Len returns the number of live entries.
func (db *MemoryDB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data)
}

func dbKey(hash, prefix []byte) string {
	return string(prefix) + string(hash)
}
