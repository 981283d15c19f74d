package sshserver

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/messages"
)

func TestNewUsesConfiguredAddress(t *testing.T) {
	msgs, err := messages.FromList([]string{"hello there"})
	if err != nil {
		t.Fatalf("FromList() error = %v", err)
	}
	cfg := config.Config{
		SSHHost:        "127.0.0.1",
		SSHPort:        2323,
		SSHHostKeyPath: filepath.Join(t.TempDir(), "host_ed25519"),
		SSHIdleTimeout: time.Minute,
		SSHMaxSessions: 4,
		MaxAttempts:    10000,
	}

	rt, err := New(cfg, msgs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := rt.Address(); got != "127.0.0.1:2323" {
		t.Fatalf("Address() = %q, want 127.0.0.1:2323", got)
	}
}

func TestLimiterRefills(t *testing.T) {
	l := newLimiter(60, 2) // one token per second
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if !l.allow("a", now) || !l.allow("a", now) {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.allow("a", now) {
		t.Fatal("third immediate session should be throttled")
	}
	if !l.allow("b", now) {
		t.Fatal("other IPs have their own bucket")
	}
	if !l.allow("a", now.Add(time.Second)) {
		t.Fatal("bucket should refill after a second")
	}
	if l.allow("a", now.Add(time.Second)) {
		t.Fatal("refill is one token per second")
	}
}

func TestLimiterDropsRefilledBuckets(t *testing.T) {
	l := newLimiter(60, 2) // full after two seconds
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.allow(ip, now)
	}
	l.allow("10.0.0.1", now.Add(500*time.Millisecond))

	later := now.Add(3 * time.Second)
	if !l.allow("10.0.0.9", later) {
		t.Fatal("new IP should be allowed")
	}
	if len(l.buckets) != 1 {
		t.Fatalf("len(buckets) = %d, want only the new IP", len(l.buckets))
	}
	if _, ok := l.buckets["10.0.0.9"]; !ok {
		t.Fatal("bucket for 10.0.0.9 missing")
	}
}
