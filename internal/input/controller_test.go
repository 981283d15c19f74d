package input

import (
	"testing"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/puzzle"
)

// newSession enciphers msg with A→X, B→Y, C→Z, D→W and E..Z shifted onto A..V.
func newSession(t *testing.T, msg string) *puzzle.Session {
	t.Helper()
	var p cipher.Permutation
	copy(p[:], "XYZWABCDEFGHIJKLMNOPQRSTUV")
	c, err := cipher.Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return puzzle.New(msg, c)
}

func values(s *puzzle.Session) string {
	out := make([]byte, s.Editable())
	for i := range out {
		v, _ := s.Value(i)
		if v == puzzle.Empty {
			v = '_'
		}
		out[i] = v
	}
	return string(out)
}

func focus(t *testing.T, s *puzzle.Session) int {
	t.Helper()
	pos, ok := s.Focused()
	if !ok {
		t.Fatal("session has no focus")
	}
	return pos
}

func TestTypingSkipsFixedGlyphs(t *testing.T) {
	s := newSession(t, "AB CD")
	c := NewController(s)

	out := c.Handle(Char('x'))
	if !out.Accepted || !out.PreventDefault {
		t.Fatalf("Handle(x) = %+v, want accepted with default prevented", out)
	}
	if out.Group != 'X' {
		t.Fatalf("Group = %q, want X", out.Group)
	}
	if got := values(s); got != "X___" {
		t.Fatalf("values = %q, want X___", got)
	}
	if got := focus(t, s); got != 1 {
		t.Fatalf("focus = %d, want 1 (group Y)", got)
	}
}

func TestTypingSkipsSameGroup(t *testing.T) {
	// AAB A C → XXY X Z
	s := newSession(t, "AAB A C")
	c := NewController(s)

	c.Handle(Char('e'))
	if got := values(s); got != "EE_E_" {
		t.Fatalf("values = %q, want EE_E_", got)
	}
	if got := focus(t, s); got != 2 {
		t.Fatalf("focus = %d, want 2", got)
	}

	c.Handle(Char('T'))
	if got := focus(t, s); got != 3 {
		t.Fatalf("focus = %d, want 3", got)
	}
	c.Handle(Char('Q'))
	if got := values(s); got != "QQTQ_" {
		t.Fatalf("values = %q, want QQTQ_", got)
	}
	if got := focus(t, s); got != 4 {
		t.Fatalf("focus = %d, want 4", got)
	}
}

func TestTypingAtEndKeepsFocus(t *testing.T) {
	s := newSession(t, "AB")
	c := NewController(s)
	s.SetFocus(1)

	out := c.Handle(Char('k'))
	if !out.Accepted || out.FocusChanged {
		t.Fatalf("Handle(k) = %+v, want accepted without focus change", out)
	}
	if got := focus(t, s); got != 1 {
		t.Fatalf("focus = %d, want 1", got)
	}
	if got := values(s); got != "_K" {
		t.Fatalf("values = %q, want _K", got)
	}
}

func TestDeleteClearsGroupWithoutMoving(t *testing.T) {
	s := newSession(t, "ABA")
	c := NewController(s)
	c.Handle(Char('m'))
	s.SetFocus(2)

	out := c.Handle(ParseKey("Backspace", false))
	if !out.Accepted || out.FocusChanged {
		t.Fatalf("Handle(Backspace) = %+v", out)
	}
	if got := values(s); got != "___" {
		t.Fatalf("values = %q, want ___", got)
	}
	if got := focus(t, s); got != 2 {
		t.Fatalf("focus = %d, want 2", got)
	}
}

func TestPasteIsRejected(t *testing.T) {
	s := newSession(t, "AB CD")
	c := NewController(s)
	c.Handle(Char('p'))

	before := values(s)
	out := c.Handle(ParseKey("Z", true))
	if out.Accepted || !out.PreventDefault {
		t.Fatalf("Handle(paste) = %+v, want rejected with default prevented", out)
	}
	if got := values(s); got != before {
		t.Fatalf("values = %q, want %q", got, before)
	}
	if got := focus(t, s); got != 1 {
		t.Fatalf("focus = %d, want 1", got)
	}
}

func TestArrowNavigation(t *testing.T) {
	s := newSession(t, "AB C")
	c := NewController(s)

	if out := c.Handle(ParseKey("ArrowLeft", false)); out.Accepted || !out.PreventDefault {
		t.Fatalf("left at start = %+v, want no-op", out)
	}
	c.Handle(ParseKey("ArrowRight", false))
	c.Handle(ParseKey("ArrowRight", false))
	if out := c.Handle(ParseKey("ArrowRight", false)); out.Accepted {
		t.Fatalf("right at end = %+v, want no-op", out)
	}
	if got := focus(t, s); got != 2 {
		t.Fatalf("focus = %d, want 2", got)
	}
	c.Handle(ParseKey("ArrowLeft", false))
	if got := focus(t, s); got != 1 {
		t.Fatalf("focus = %d, want 1", got)
	}
	if got := values(s); got != "___" {
		t.Fatalf("navigation changed values: %q", got)
	}
}

func TestIgnoredKeys(t *testing.T) {
	tests := []struct {
		name        string
		event       Event
		wantDefault bool
	}{
		{name: "tab", event: ParseKey("Tab", false), wantDefault: false},
		{name: "escape", event: ParseKey("Escape", false), wantDefault: false},
		{name: "named key", event: ParseKey("Enter", false), wantDefault: false},
		{name: "digit", event: Char('7'), wantDefault: true},
		{name: "punctuation", event: Char('!'), wantDefault: true},
		{name: "non-latin letter", event: Char('é'), wantDefault: true},
		{name: "targeted digit", event: Char('1').At(2), wantDefault: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "AB C")
			c := NewController(s)
			out := c.Handle(tt.event)
			if out.Accepted || out.FocusChanged {
				t.Fatalf("Handle() = %+v, want ignored", out)
			}
			if out.PreventDefault != tt.wantDefault {
				t.Fatalf("PreventDefault = %v, want %v", out.PreventDefault, tt.wantDefault)
			}
			if got := values(s); got != "___" {
				t.Fatalf("values = %q", got)
			}
			if got := focus(t, s); got != 0 {
				t.Fatalf("focus = %d, want 0", got)
			}
		})
	}
}

func TestTargetedEvents(t *testing.T) {
	s := newSession(t, "AB CD")
	c := NewController(s)

	out := c.Handle(Char('d').At(2))
	if !out.Accepted || out.Group != 'Z' {
		t.Fatalf("Handle(d@2) = %+v", out)
	}
	if got := focus(t, s); got != 3 {
		t.Fatalf("focus = %d, want 3", got)
	}

	out = c.Handle(Char('d').At(7))
	if out.Accepted {
		t.Fatalf("Handle(d@7) = %+v, want rejected", out)
	}
	if got := values(s); got != "__D_" {
		t.Fatalf("values = %q, want __D_", got)
	}
}

func TestNoEditableSlots(t *testing.T) {
	c := NewController(newSession(t, "1, 2, 3"))
	for _, e := range []Event{Char('a'), Key(KindDelete), Key(KindLeft), Key(KindRight)} {
		out := c.Handle(e)
		if out.Accepted || out.Focus != -1 {
			t.Fatalf("Handle(%v) = %+v, want no-op", e.Kind, out)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{"Backspace", KindDelete},
		{"Delete", KindDelete},
		{"ArrowLeft", KindLeft},
		{"ArrowRight", KindRight},
		{"Tab", KindTab},
		{"Escape", KindEscape},
		{"a", KindChar},
		{"Shift", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := ParseKey(tt.key, false).Kind; got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
