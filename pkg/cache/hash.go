package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a stage cache key of the form prefix:hash(parts...).
// The prefix names the stage (palette, trace, artifact); the parts are
// the prompt or upstream content hash plus the key opts, so any option
// that changes the stage's output changes the key.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 content hash used to chain pipeline stages:
// the trace key embeds the derivation's hash and the artifact key embeds
// the trace hash. Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
