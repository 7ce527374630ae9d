// internal/daily/daily.go
//
// Daily case: every player gets the same deal on the same UTC date.
// The seed is a keyed BLAKE2b hash of YYYY-MM-DD, so it cannot be guessed
// without the server salt.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic game seed for date under salt.
func Seed(date time.Time, salt string) int64 {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// only reachable with an oversized key, handled above
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}
