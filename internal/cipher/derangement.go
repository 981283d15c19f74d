// internal/cipher/derangement.go
//
// Random derangements of the alphabet.
// Responsibilities:
//   - Shuffle the alphabet with an unbiased Fisher–Yates pass.
//   - Reject any shuffle that leaves a letter in its own position.
//   - Bound the retry loop so a broken random source fails loudly.
//
// Roughly 37% of shuffles over 26 letters are fixed-point free, so the
// expected number of attempts is below two.
package cipher

import (
	"errors"
	"math/rand/v2"
	"time"
)

// Alphabet is the ordered symbol set the cipher operates over.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Size is the number of letters in Alphabet.
const Size = len(Alphabet)

// DefaultMaxAttempts caps rejection sampling in Derangement.
const DefaultMaxAttempts = 10000

// ErrExhausted is returned when no derangement was found within MaxAttempts.
var ErrExhausted = errors.New("cipher: derangement attempts exhausted")

// Permutation is an ordering of Alphabet; Permutation[i] is the image of Alphabet[i].
type Permutation [Size]byte

// Generator produces random derangements.
type Generator struct {
	rng         *rand.Rand
	MaxAttempts int
}

// NewGenerator returns a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewSeededGenerator(seed, seed^0x9e3779b97f4a7c15)
}

// NewSeededGenerator returns a deterministic Generator (used by tests and replays).
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewPCG(seed1, seed2)),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Shuffle returns a uniformly random permutation of Alphabet, fixed points allowed.
func (g *Generator) Shuffle() Permutation {
	var p Permutation
	copy(p[:], Alphabet)
	for i := Size - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Derangement returns a uniformly random permutation of Alphabet with no fixed points.
func (g *Generator) Derangement() (Permutation, error) {
	limit := g.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}
	for attempt := 0; attempt < limit; attempt++ {
		p := g.Shuffle()
		if !p.HasFixedPoint() {
			return p, nil
		}
	}
	return Permutation{}, ErrExhausted
}

// HasFixedPoint reports whether any letter maps to itself.
func (p Permutation) HasFixedPoint() bool {
	for i := 0; i < Size; i++ {
		if p[i] == Alphabet[i] {
			return true
		}
	}
	return false
}

// String returns the permuted alphabet.
func (p Permutation) String() string { return string(p[:]) }
