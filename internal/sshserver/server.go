// internal/sshserver/server.go
//
// Serves the terminal cryptogram over SSH.
// Responsibilities:
//   - Wire config, middleware and the Wish server as a testable unit.
//   - Start one game per SSH session and hand it to the Bubble Tea model.
//   - Shut down cleanly on SIGINT/SIGTERM or context cancellation.

package sshserver

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/game"
	"github.com/robalobadob/cryptogram/internal/messages"
	"github.com/robalobadob/cryptogram/internal/tui"
)

// Runtime bundles the Wish server with the settings it was built from.
type Runtime struct {
	cfg    config.Config
	msgs   *messages.Set
	server *ssh.Server
}

// New builds a runtime listening on cfg.SSHAddr().
func New(cfg config.Config, msgs *messages.Set) (*Runtime, error) {
	rt := &Runtime{cfg: cfg, msgs: msgs}

	// Wish runs middleware last-to-first: the session cap and rate limit
	// see the connection before the PTY check and the program start.
	srv, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddr()),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithIdleTimeout(cfg.SSHIdleTimeout),
		wish.WithMiddleware(
			bm.Middleware(rt.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
			RateLimit(defaultRatePerMinute, defaultBurst),
			SessionLimit(cfg.SSHMaxSessions),
		),
	)
	if err != nil {
		return nil, err
	}
	rt.server = srv
	return rt, nil
}

// Address returns the configured listen address.
func (r *Runtime) Address() string {
	return r.server.Addr
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-ctx.Done()
		_ = r.server.Shutdown(context.Background())
	}()

	log.Info().
		Str("addr", r.server.Addr).
		Str("hostKeyPath", r.cfg.SSHHostKeyPath).
		Dur("idleTimeout", r.cfg.SSHIdleTimeout).
		Int("maxSessions", r.cfg.SSHMaxSessions).
		Msg("starting ssh server")
	err := r.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) || err == nil {
		return nil
	}
	return err
}

// teaHandler starts a game for the session's message and wraps it in the
// terminal model.
func (r *Runtime) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	gen := cipher.NewGenerator()
	gen.MaxAttempts = r.cfg.MaxAttempts

	g, err := game.New(r.msgs.Random(), gen)
	if err != nil {
		log.Error().Err(err).Str("user", s.User()).Msg("start ssh game")
		wish.Fatalln(s, "could not start a puzzle, try again")
		return nil, nil
	}
	log.Info().Str("gameId", g.ID).Str("user", s.User()).Str("remote", s.RemoteAddr().String()).Msg("ssh game started")

	pty, _, _ := s.Pty()
	m := tui.NewModel(g).WithSize(pty.Window.Width, pty.Window.Height)
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}
