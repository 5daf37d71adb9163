package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SeedKey returns the shared room seed for a date: everyone who asks the
// server on the same day gets the same seed, and therefore the same board,
// with no coordination. The HMAC tag keeps the seed from being guessable
// ahead of time when a non-default salt is configured.
func SeedKey(date time.Time, salt string) string {
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	tag := hex.EncodeToString(h.Sum(nil))[:8]
	return fmt.Sprintf("daily-%s-%s", dk, tag)
}
