// internal/cipher/cipher.go
//
// Substitution cipher built from a derangement.
// Responsibilities:
//   - Zip Alphabet with a permutation into a letter → letter table.
//   - Apply the table rune by rune, passing everything else through in place.
//
// The cipher is forward-only in play: messages are enciphered once per game
// and guesses are never validated against the table.
package cipher

import (
	"errors"
	"strings"
)

var (
	// ErrNotPermutation is returned when a permutation repeats or omits a letter.
	ErrNotPermutation = errors.New("cipher: not a permutation of the alphabet")
	// ErrFixedPoint is returned when a permutation maps a letter to itself.
	ErrFixedPoint = errors.New("cipher: permutation has a fixed point")
)

// Cipher maps each Alphabet letter to its ciphertext letter.
type Cipher struct {
	table [Size]byte
}

// Build zips Alphabet positionally with p.
func Build(p Permutation) (Cipher, error) {
	var seen [Size]bool
	for _, b := range p {
		i, ok := index(b)
		if !ok || seen[i] {
			return Cipher{}, ErrNotPermutation
		}
		seen[i] = true
	}
	if p.HasFixedPoint() {
		return Cipher{}, ErrFixedPoint
	}
	return Cipher{table: p}, nil
}

// New generates a fresh derangement with g and builds a Cipher from it.
func New(g *Generator) (Cipher, error) {
	p, err := g.Derangement()
	if err != nil {
		return Cipher{}, err
	}
	return Build(p)
}

// Has reports whether r is in the cipher's key set.
func (c Cipher) Has(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Encode maps a single letter. ok is false for runes outside the key set.
func (c Cipher) Encode(r rune) (rune, bool) {
	if !c.Has(r) {
		return r, false
	}
	return rune(c.table[r-'A']), true
}

// Apply maps every rune of text; runes outside the key set pass through unchanged.
func (c Cipher) Apply(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		out, _ := c.Encode(r)
		b.WriteRune(out)
	}
	return b.String()
}

// Encipher upper-cases message and applies the cipher.
func (c Cipher) Encipher(message string) string {
	return c.Apply(strings.ToUpper(message))
}

// Inverse returns the decoding table.
func (c Cipher) Inverse() Cipher {
	var inv Cipher
	for i, b := range c.table {
		inv.table[b-'A'] = Alphabet[i]
	}
	return inv
}


// String returns the ciphertext letters in Alphabet order.
func (c Cipher) String() string { return string(c.table[:]) }

func index(b byte) (int, bool) {
	if b < 'A' || b > 'Z' {
		return 0, false
	}
	return int(b - 'A'), true
}
