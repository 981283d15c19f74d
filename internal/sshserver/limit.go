// internal/sshserver/limit.go
//
// Connection guards for the SSH front end:
//   - SessionLimit caps concurrent sessions server-wide.
//   - RateLimit throttles new sessions per remote IP with a token bucket.

package sshserver

import (
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/rs/zerolog/log"
)

const (
	defaultRatePerMinute = 30
	defaultBurst         = 10
)

// SessionLimit rejects sessions beyond max concurrent ones.
func SessionLimit(max int) wish.Middleware {
	if max <= 0 {
		max = 1
	}
	slots := make(chan struct{}, max)
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			select {
			case slots <- struct{}{}:
			default:
				log.Warn().Str("remote", remoteIP(s)).Int("max", max).Msg("ssh session limit reached")
				wish.Fatalln(s, "server is full, try again later")
				return
			}
			defer func() { <-slots }()
			next(s)
		}
	}
}

type bucket struct {
	tokens float64
	last   time.Time
}

// limiter is a per-key token bucket. A bucket that has refilled to burst is
// indistinguishable from a missing one, so sweep drops it.
type limiter struct {
	mu        sync.Mutex
	rate      float64 // tokens per second
	burst     float64
	buckets   map[string]bucket
	lastSweep time.Time
}

func newLimiter(perMinute, burst int) *limiter {
	if perMinute <= 0 {
		perMinute = defaultRatePerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &limiter{
		rate:    float64(perMinute) / 60.0,
		burst:   float64(burst),
		buckets: make(map[string]bucket),
	}
}

func (l *limiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.refillTime() {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = bucket{tokens: l.burst, last: now}
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = min(l.burst, b.tokens+elapsed*l.rate)
		b.last = now
	}
	if b.tokens < 1 {
		l.buckets[key] = b
		return false
	}
	b.tokens--
	l.buckets[key] = b
	return true
}

// refillTime is how long an empty bucket takes to fill up.
func (l *limiter) refillTime() time.Duration {
	return time.Duration(l.burst / l.rate * float64(time.Second))
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*l.rate >= l.burst {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit allows perMinute new sessions per remote IP, with bursts of up
// to burst.
func RateLimit(perMinute, burst int) wish.Middleware {
	l := newLimiter(perMinute, burst)
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := remoteIP(s)
			if !l.allow(ip, time.Now()) {
				log.Warn().Str("remote", ip).Msg("ssh rate limit")
				wish.Fatalln(s, "rate limit exceeded")
				return
			}
			next(s)
		}
	}
}

func remoteIP(s ssh.Session) string {
	remote := s.RemoteAddr()
	if remote == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}
	if host == "" {
		return "unknown"
	}
	return host
}
