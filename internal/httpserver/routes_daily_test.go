package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func glyphs(res dailyRes) string {
	var out []byte
	for _, t := range res.Board.Tiles {
		out = append(out, t.Glyph...)
	}
	return string(out)
}

func TestDailySameForEveryone(t *testing.T) {
	s := newTestServer(t)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

	first := do(t, s, http.MethodPost, "/daily/new", "", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("POST /daily/new status = %d body=%s", first.Code, first.Body.String())
	}
	a := decode[dailyRes](t, first)
	b := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", nil))

	if a.Date != "2025-06-01" {
		t.Fatalf("Date = %q", a.Date)
	}
	if a.GameID == b.GameID {
		t.Fatal("separate callers should get separate games")
	}
	if glyphs(a) != glyphs(b) {
		t.Fatalf("daily ciphertext differs: %q vs %q", glyphs(a), glyphs(b))
	}
}

func TestDailyResumesWithToken(t *testing.T) {
	s := newTestServer(t)
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	a := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", nil))
	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+a.Token) }

	again := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", bearer))
	if !again.Resume || again.GameID != a.GameID {
		t.Fatalf("second call = %+v, want resume of %s", again, a.GameID)
	}

	// next day the same token starts a new puzzle
	s.now = func() time.Time { return day.Add(24 * time.Hour) }
	next := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", bearer))
	if next.Resume || next.GameID == a.GameID || next.Date != "2025-06-02" {
		t.Fatalf("next day = %+v", next)
	}

	// a plain game token never resumes a daily
	g := newGame(t, s, "")
	plain := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+g.Token) }
	if res := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", plain)); res.Resume {
		t.Fatal("plain game token resumed a daily")
	}
}

func TestDailyForgottenAfterPrune(t *testing.T) {
	s := newTestServer(t)
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	var first dailyRes
	for i := 0; i < 50; i++ {
		res := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", nil))
		if i == 0 {
			first = res
		}
	}
	if got := s.store.Prune(context.Background(), time.Now().Add(time.Hour)); got != 50 {
		t.Fatalf("Prune() = %d, want 50", got)
	}
	if s.store.Len() != 0 {
		t.Fatalf("store still holds %d games", s.store.Len())
	}

	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+first.Token) }
	res := decode[dailyRes](t, do(t, s, http.MethodPost, "/daily/new", "", bearer))
	if res.Resume || res.GameID == first.GameID {
		t.Fatalf("pruned daily game came back: %+v", res)
	}
	if s.store.Len() != 1 {
		t.Fatalf("store holds %d games, want only the new daily", s.store.Len())
	}
}
