// Package daily derives the shared card order for a "daily" round: every
// player who starts a daily round on the same UTC date gets the same shuffle.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic shuffle seed for a date using HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes, sign bit cleared so the seed stays non-negative
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}

// Rand returns a fresh source seeded for date. Each call starts the sequence
// over, so two rounds built from two Rand calls on the same day match.
func Rand(date time.Time, salt string) *rand.Rand {
	return rand.New(rand.NewSource(Seed(date, salt)))
}
