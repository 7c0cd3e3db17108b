package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
)

// ArtifactKey derives the cache key of a compiled artifact. The key format
// is "artifact:<format>:<sha256>", where the hash covers opts (as JSON)
// and each input in order. Inputs are length-prefixed so that moving bytes
// between neighbouring inputs changes the key.
func ArtifactKey(format string, opts any, inputs ...[]byte) string {
	h := sha256.New()
	optData, _ := json.Marshal(opts)
	writeChunk(h, []byte(format))
	writeChunk(h, optData)
	for _, in := range inputs {
		writeChunk(h, in)
	}
	return "artifact:" + format + ":" + hex.EncodeToString(h.Sum(nil))
}

func writeChunk(h io.Writer, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
