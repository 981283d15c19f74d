// internal/input/controller.go
//
// Translates keystrokes into puzzle session operations.
// Rules:
//   - A letter fills the focused slot's group, then focus skips ahead to the
//     next slot of a different group (unchanged at the end of the puzzle).
//   - Backspace/Delete clears the focused group; focus stays put.
//   - Paste is rejected outright.
//   - Left/Right move focus by one editable slot, no-op at the bounds.
//   - Tab, Escape and unrecognised keys are ignored and keep their default
//     behavior.
//   - Any other character is ignored with its default suppressed.
package input

import (
	"unicode"

	"github.com/robalobadob/cryptogram/internal/puzzle"
)

// Outcome reports what the controller did with an event.
type Outcome struct {
	// Accepted is true when the event changed a value or the focus.
	Accepted bool `json:"accepted"`
	// PreventDefault is true when the front end must not apply the event's
	// native effect (inserting text, moving a caret).
	PreventDefault bool `json:"preventDefault"`
	// Group is the ciphertext letter whose slots were rewritten; 0 when none.
	Group byte `json:"-"`
	// Focus is the focused editable position after the event; -1 when none.
	Focus        int  `json:"focus"`
	FocusChanged bool `json:"focusChanged"`
}

// Controller applies events to the session it is bound to. It does not own
// the session.
type Controller struct {
	session *puzzle.Session
}

// NewController binds a controller to s.
func NewController(s *puzzle.Session) *Controller {
	return &Controller{session: s}
}

// Session returns the bound session.
func (c *Controller) Session() *puzzle.Session { return c.session }

// Handle applies e to the bound session.
func (c *Controller) Handle(e Event) Outcome {
	before := c.focus()
	out := Outcome{Focus: before}

	switch e.Kind {
	case KindTab, KindEscape, KindUnknown:
		return out
	case KindPaste:
		out.PreventDefault = true
		return out
	}
	out.PreventDefault = true

	letter := unicode.ToUpper(e.Char)
	if e.Kind == KindChar && !c.session.Cipher().Has(letter) {
		return out
	}
	if e.Targeted && !c.session.SetFocus(e.Slot) {
		return out
	}
	pos, ok := c.session.Focused()
	if !ok {
		return out
	}

	switch e.Kind {
	case KindChar:
		g, _ := c.session.GroupOf(pos)
		c.session.SetGroupValue(g, byte(letter))
		out.Group = g
		out.Accepted = true
		if next, ok := c.session.NextDifferentGroupAfter(pos); ok {
			c.session.SetFocus(next)
		}
	case KindDelete:
		g, _ := c.session.GroupOf(pos)
		c.session.SetGroupValue(g, puzzle.Empty)
		out.Group = g
		out.Accepted = true
	case KindLeft:
		if prev, ok := c.session.PreviousSlot(pos); ok {
			c.session.SetFocus(prev)
			out.Accepted = true
		}
	case KindRight:
		if next, ok := c.session.NextSlot(pos); ok {
			c.session.SetFocus(next)
			out.Accepted = true
		}
	}

	out.Focus = c.focus()
	out.FocusChanged = out.Focus != before
	if out.FocusChanged {
		out.Accepted = true
	}
	return out
}

func (c *Controller) focus() int {
	pos, ok := c.session.Focused()
	if !ok {
		return -1
	}
	return pos
}
