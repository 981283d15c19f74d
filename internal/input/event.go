// internal/input/event.go
//
// Keystroke events delivered by the terminal and HTTP front ends.
package input

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a keystroke.
type Kind int

const (
	KindUnknown Kind = iota
	KindChar
	KindDelete
	KindPaste
	KindLeft
	KindRight
	KindTab
	KindEscape
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindChar:    "char",
	KindDelete:  "delete",
	KindPaste:   "paste",
	KindLeft:    "left",
	KindRight:   "right",
	KindTab:     "tab",
	KindEscape:  "escape",
}

func (k Kind) String() string { return kindNames[k] }

// Event is one keystroke. When Targeted is set, Slot names the editable
// position the keystroke originated from.
type Event struct {
	Kind     Kind
	Char     rune
	Slot     int
	Targeted bool
}

// Char returns a printable-character event.
func Char(r rune) Event { return Event{Kind: KindChar, Char: r} }

// Key returns an event of the given non-character kind.
func Key(k Kind) Event { return Event{Kind: k} }

// At returns e targeted at editable position pos.
func (e Event) At(pos int) Event {
	e.Slot = pos
	e.Targeted = true
	return e
}

// ParseKey maps a DOM-style key name to an Event. paste marks clipboard input
// regardless of key.
func ParseKey(key string, paste bool) Event {
	if paste {
		return Key(KindPaste)
	}
	switch strings.ToLower(key) {
	case "backspace", "delete", "del":
		return Key(KindDelete)
	case "arrowleft", "left":
		return Key(KindLeft)
	case "arrowright", "right":
		return Key(KindRight)
	case "tab":
		return Key(KindTab)
	case "escape", "esc":
		return Key(KindEscape)
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return Char(r)
	}
	return Key(KindUnknown)
}
