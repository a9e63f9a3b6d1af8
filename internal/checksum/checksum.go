// Package checksum fingerprints fixture content so unchanged reloads can be skipped.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Combine folds a name → checksum map into one digest that is independent of
// map iteration order.
func Combine(parts map[string]string) string {
	names := make([]string, 0, len(parts))
	for n := range parts {
		names = append(names, n)
	}
	sort.Strings(names)
	h := sha256.New()
	for _, n := range names {
		h.Write([]byte(n))
		h.Write([]byte{0})
		h.Write([]byte(parts[n]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
