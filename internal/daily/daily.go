// internal/daily/daily.go
//
// Deterministic "puzzle of the day" selection.
// Every player gets the same message and the same cipher on a given UTC
// date. Both are derived from HMAC-SHA256(salt, YYYY-MM-DD), so the salt
// keeps upcoming puzzles from being predicted.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/cryptogram/internal/cipher"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Puzzle identifies the daily puzzle for one date.
type Puzzle struct {
	Date  string // YYYY-MM-DD
	Index int    // message index
	seed1 uint64
	seed2 uint64
}

// For derives the puzzle of date t from salt for a message list of size n.
func For(t time.Time, salt string, n int) Puzzle {
	dk := DateKey(t)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)

	p := Puzzle{
		Date:  dk,
		seed1: binary.BigEndian.Uint64(sum[8:16]),
		seed2: binary.BigEndian.Uint64(sum[16:24]),
	}
	if n > 0 {
		p.Index = int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
	}
	return p
}

// Generator returns a derangement generator seeded for this puzzle. Restarts
// continue the seeded stream, so they are reproducible too.
func (p Puzzle) Generator(maxAttempts int) *cipher.Generator {
	g := cipher.NewSeededGenerator(p.seed1, p.seed2)
	g.MaxAttempts = maxAttempts
	return g
}
