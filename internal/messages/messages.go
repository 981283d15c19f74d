// internal/messages/messages.go
//
// Source messages for new puzzles.
//
// Responsibilities:
//   - Load messages from a file or fall back to the embedded default list.
//   - Let a single configured message override any list.
//   - Supply Default (first message, used on every restart) and Random.
//
// Selection order (Load):
//   1. A non-empty pinned message wins outright.
//   2. Otherwise, if a file path is set, read one message per line from it.
//   3. Otherwise, use the embedded assets/messages.txt.
//
// Constraints:
//   • Messages must contain at least one letter A–Z (case-insensitive);
//     others are skipped since they would have nothing to fill in.
//   • Blank lines and lines starting with # are skipped.

package messages

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/cryptogram/assets"
)

// ErrEmpty is returned when no usable message was found.
var ErrEmpty = errors.New("messages: no usable messages")

// Set is an ordered, non-empty list of puzzle messages.
type Set struct {
	list []string
}

// Load builds a Set following the selection order above.
func Load(pinned, path string) (*Set, error) {
	var raw []string
	switch {
	case strings.TrimSpace(pinned) != "":
		raw = []string{pinned}
	case path != "":
		var err error
		raw, err = readFile(path)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		raw, err = assets.MessagesList()
		if err != nil {
			return nil, err
		}
	}
	return FromList(raw)
}

// FromList keeps the usable entries of raw.
func FromList(raw []string) (*Set, error) {
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		m = strings.TrimSpace(m)
		if hasLetter(m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &Set{list: out}, nil
}

// readFile loads one message per line, skipping blanks and # comments.
func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// hasLetter reports whether s contains at least one ASCII letter.
func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// Default returns the first message.
func (s *Set) Default() string { return s.list[0] }

// Random returns a cryptographically random message.
func (s *Set) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.list))))
	if err != nil {
		return s.list[0]
	}
	return s.list[n.Int64()]
}

// At returns message i, wrapping around the list.
func (s *Set) At(i int) string {
	if i < 0 {
		i = -i
	}
	return s.list[i%len(s.list)]
}

// Len returns the number of messages.
func (s *Set) Len() int { return len(s.list) }
