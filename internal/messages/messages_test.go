package messages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	set, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.HasPrefix(set.Default(), "A word of kindness") {
		t.Fatalf("Default() = %q", set.Default())
	}
}

func TestLoadPinnedWins(t *testing.T) {
	set, err := Load("  Hello, world  ", "/does/not/exist")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Len() != 1 || set.Default() != "Hello, world" {
		t.Fatalf("Default() = %q, Len() = %d", set.Default(), set.Len())
	}
	if set.Random() != "Hello, world" {
		t.Fatalf("Random() = %q", set.Random())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	body := "# comment\n\nfirst message\n12345\nsecond one\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	set, err := Load("", path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Len() != 2 || set.Default() != "first message" {
		t.Fatalf("Len() = %d, Default() = %q", set.Len(), set.Default())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestFromListRejectsLetterlessMessages(t *testing.T) {
	_, err := FromList([]string{"", "123", "..."})
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("FromList() error = %v, want ErrEmpty", err)
	}
}

func TestAtWraps(t *testing.T) {
	s, err := FromList([]string{"one", "two", "three"})
	if err != nil {
		t.Fatalf("FromList() error = %v", err)
	}
	if got := s.At(4); got != "two" {
		t.Fatalf("At(4) = %q, want two", got)
	}
	if got := s.At(-1); got != "two" {
		t.Fatalf("At(-1) = %q, want two", got)
	}
}
