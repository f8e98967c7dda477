package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the short-lived in-process cache used for extracted articles
// and evidence search results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// Key derives a cache key from an arbitrary identifier (URL or query)
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}
