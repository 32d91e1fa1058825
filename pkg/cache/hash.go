package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<label>:<sha256 of the JSON-encoded parts>". The label
// keeps keys readable in Redis and selects the FileCache subdirectory.
func hashKey(label string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Key parts are plain strings and bools.
		panic("cache: unencodable key parts: " + err.Error())
	}
	return label + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
