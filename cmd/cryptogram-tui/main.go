// cmd/cryptogram-tui/main.go
//
// Plays a cryptogram in the local terminal.
// Logs go to cryptogram.log (or LOG_FILE) so they never draw over the board.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/game"
	"github.com/robalobadob/cryptogram/internal/messages"
	"github.com/robalobadob/cryptogram/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cryptogram:", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdin and stdout must be a terminal")
	}
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logPath := os.Getenv("LOG_FILE")
	if logPath == "" {
		logPath = "cryptogram.log"
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	cfg.ConfigureLogger(f)

	msgs, err := messages.Load(cfg.Message, cfg.MessagesFile)
	if err != nil {
		return err
	}
	gen := cipher.NewGenerator()
	gen.MaxAttempts = cfg.MaxAttempts

	g, err := game.New(msgs.Default(), gen)
	if err != nil {
		return err
	}
	log.Info().Str("gameId", g.ID).Msg("terminal game started")

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 0, 0
	}
	m := tui.NewModel(g).WithSize(w, h)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
