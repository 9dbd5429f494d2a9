package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the full 64-char hex SHA-256 of a payload. Dataset, tree,
// and layout content hashes all come from here, so cache keys and
// snapshot metadata agree on what "same content" means.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a stage cache key of the form "stage:<sha256(parts)>".
// Parts are JSON-marshalled so option structs fingerprint deterministically.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return stage + ":" + Hash(data)
}
