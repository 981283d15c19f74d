// internal/puzzle/session.go
//
// Puzzle session state for a single enciphered message.
// Responsibilities:
//   - Turn an enciphered message into slots (one per rune).
//   - Track the editable-slot sequence used for focus navigation.
//   - Keep every slot of a ciphertext group holding the same guess.
//   - Track which editable slot has focus.
//
// Positions passed to the focus and navigation methods index the editable
// sequence, not the message. Out-of-range positions are no-ops.
package puzzle

import (
	"slices"
	"strings"

	"github.com/robalobadob/cryptogram/internal/cipher"
)

// Empty is the value of a slot with no guess.
const Empty byte = 0

// Slot is one rendered character of the enciphered message.
type Slot struct {
	Index    int  // position in the message (rune offset)
	Glyph    rune // ciphertext rune as displayed
	Cipher   byte // ciphertext letter; 0 for fixed glyphs
	Value    byte // guessed plaintext letter; Empty when unset
	Editable bool
}

// Session owns the cipher, the slots and the focus of one game.
type Session struct {
	cipher     cipher.Cipher
	ciphertext string
	slots      []Slot
	editable   []int          // editable position -> slot index
	groups     map[byte][]int // ciphertext letter -> editable positions
	values     map[byte]byte  // ciphertext letter -> guess
	focus      int            // editable position; -1 when nothing is editable
}

// New builds a session by upper-casing and enciphering message with c.
func New(message string, c cipher.Cipher) *Session {
	ct := c.Encipher(message)
	s := &Session{
		cipher:     c,
		ciphertext: ct,
		groups:     make(map[byte][]int),
		values:     make(map[byte]byte),
		focus:      -1,
	}
	for _, r := range ct {
		slot := Slot{Index: len(s.slots), Glyph: r}
		if c.Has(r) {
			slot.Cipher = byte(r)
			slot.Editable = true
			pos := len(s.editable)
			s.editable = append(s.editable, slot.Index)
			s.groups[slot.Cipher] = append(s.groups[slot.Cipher], pos)
		}
		s.slots = append(s.slots, slot)
	}
	if len(s.editable) > 0 {
		s.focus = 0
	}
	return s
}

// Cipher returns the session's cipher.
func (s *Session) Cipher() cipher.Cipher { return s.cipher }

// Ciphertext returns the enciphered message.
func (s *Session) Ciphertext() string { return s.ciphertext }

// Editable returns the number of editable slots.
func (s *Session) Editable() int { return len(s.editable) }

// Slots returns a copy of every slot in message order.
func (s *Session) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// GroupOf returns the ciphertext letter of the slot at editable position pos.
func (s *Session) GroupOf(pos int) (byte, bool) {
	if !s.valid(pos) {
		return 0, false
	}
	return s.slots[s.editable[pos]].Cipher, true
}

// Value returns the guess held by the slot at editable position pos.
func (s *Session) Value(pos int) (byte, bool) {
	if !s.valid(pos) {
		return Empty, false
	}
	return s.slots[s.editable[pos]].Value, true
}

// GroupValues returns the current guess of every group that has one.
func (s *Session) GroupValues() map[byte]byte {
	out := make(map[byte]byte, len(s.values))
	for g, v := range s.values {
		out[g] = v
	}
	return out
}

// SetGroupValue writes letter into every slot of group g; Empty clears the group.
// It reports false, leaving state untouched, for unknown groups or letters
// outside the alphabet.
func (s *Session) SetGroupValue(g byte, letter byte) bool {
	members, ok := s.groups[g]
	if !ok {
		return false
	}
	if letter != Empty && strings.IndexByte(cipher.Alphabet, letter) < 0 {
		return false
	}
	for _, pos := range members {
		s.slots[s.editable[pos]].Value = letter
	}
	if letter == Empty {
		delete(s.values, g)
	} else {
		s.values[g] = letter
	}
	return true
}

// Focused returns the editable position holding focus.
func (s *Session) Focused() (int, bool) {
	if s.focus < 0 {
		return 0, false
	}
	return s.focus, true
}

// SetFocus moves focus to editable position pos. Invalid positions are ignored.
func (s *Session) SetFocus(pos int) bool {
	if !s.valid(pos) {
		return false
	}
	s.focus = pos
	return true
}

// NextDifferentGroupAfter returns the first editable position after pos whose
// group differs from the group at pos.
func (s *Session) NextDifferentGroupAfter(pos int) (int, bool) {
	g, ok := s.GroupOf(pos)
	if !ok {
		return 0, false
	}
	for next := pos + 1; next < len(s.editable); next++ {
		if s.slots[s.editable[next]].Cipher != g {
			return next, true
		}
	}
	return 0, false
}

// PreviousSlot returns pos-1 when it is a valid editable position.
func (s *Session) PreviousSlot(pos int) (int, bool) {
	if !s.valid(pos) || !s.valid(pos-1) {
		return 0, false
	}
	return pos - 1, true
}

// NextSlot returns pos+1 when it is a valid editable position.
func (s *Session) NextSlot(pos int) (int, bool) {
	if !s.valid(pos) || !s.valid(pos+1) {
		return 0, false
	}
	return pos + 1, true
}

// PositionOf maps a message index to its editable position.
func (s *Session) PositionOf(index int) (int, bool) {
	if index < 0 || index >= len(s.slots) || !s.slots[index].Editable {
		return 0, false
	}
	pos, _ := slices.BinarySearch(s.editable, index)
	return pos, true
}

func (s *Session) valid(pos int) bool {
	return pos >= 0 && pos < len(s.editable)
}
