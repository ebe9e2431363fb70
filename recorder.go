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

// Recorder captures every node the backing database serves while it is
// attached to a tree. Overlay and null-node resolutions are not recorded:
// a verifier replaying the reads re-derives those locally. Recording the
// same node twice is idempotent.
type Recorder struct {
	nodes map[string]Node
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[string]Node)}
}

func (r *Recorder) record(n Node) {
	r.nodes[string(n.Hash())] = n
}

// DrainStorageProof empties the recorder into a storage proof holding the
// canonical encodings of the recorded nodes.
func (r *Recorder) DrainStorageProof() StorageProof {
	encodings := make([][]byte, 0, len(r.nodes))
	for _, n := range r.nodes {
		encodings = append(encodings, n.Encode())
	}
	r.nodes = make(map[string]Node)
	return StorageProof{encodings: encodings}
}

// StorageProof is a set of canonically encoded nodes sufficient to replay
// a chosen set of reads against the root they were recorded under.
type StorageProof struct {
	encodings [][]byte
}

// NewStorageProof wraps a set of canonical node encodings, e.g. received
// from a remote prover.
func NewStorageProof(encodings [][]byte) StorageProof {
	return StorageProof{encodings: encodings}
}

// Encodings returns the encoded nodes.
func (p StorageProof) Encodings() [][]byte {
	return p.encodings
}

// IntoMemoryDB materializes the proof into a minimal in-memory database.
// Each encoding is stored under the node hash recomputed with h, so a
// tree built over the returned database and the original root can serve
// any read whose path was recorded, and no others.
func (p StorageProof) IntoMemoryDB(h Hasher) (*MemoryDB, error) {
	db := NewMemoryDB()
	for _, encoded := range p.encodings {
		n, err := DecodeNode(h, encoded)
		if err != nil {
			return nil, err
		}
		db.Emplace(n.Hash(), EmptyPrefix, encoded)
	}
	return db, nil
}
