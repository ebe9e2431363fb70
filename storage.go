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

// storageEntry pairs a pending node with the number of times it has been
// inserted since the last commit.
type storageEntry struct {
	node  Node
	count int
}

// nodeStorage is the refcounted in-memory overlay of nodes created by a
// mutable tree between commits.
type nodeStorage struct {
	nodes map[string]storageEntry
}

func newNodeStorage() *nodeStorage {
	return &nodeStorage{nodes: make(map[string]storageEntry)}
}

// insert adds the node, incrementing its count if already present.
func (s *nodeStorage) insert(n Node) {
	key := string(n.Hash())
	entry, ok := s.nodes[key]
	if !ok {
		entry = storageEntry{node: n}
	}
	entry.count++
	s.nodes[key] = entry
}

// get returns the node stored under hash, if any.
func (s *nodeStorage) get(hash []byte) (Node, bool) {
	entry, ok := s.nodes[string(hash)]
	if !ok {
		return nil, false
	}
	return entry.node, true
}

// remove decrements the count of hash and returns the node once the count
// drops to zero and the entry is discarded.
func (s *nodeStorage) remove(hash []byte) (Node, bool) {
	key := string(hash)
	entry, ok := s.nodes[key]
	if !ok {
		return nil, false
	}
	entry.count--
	if entry.count > 0 {
		s.nodes[key] = entry
		return nil, false
	}
	delete(s.nodes, key)
	return entry.node, true
}

// drain empties the overlay and hands the pending entries to the caller.
func (s *nodeStorage) drain() map[string]storageEntry {
	drained := s.nodes
	s.nodes = make(map[string]storageEntry)
	return drained
}
