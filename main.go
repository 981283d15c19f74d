// main.go
//
// Entry point for the cryptogram HTTP server.
// Loads .env and configuration, sets up logging and the message list, then
// serves the JSON API. A janitor goroutine drops games idle for longer than
// GAME_TTL.

package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/httpserver"
	"github.com/robalobadob/cryptogram/internal/messages"
	"github.com/robalobadob/cryptogram/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg.ConfigureLogger(os.Stdout)

	msgs, err := messages.Load(cfg.Message, cfg.MessagesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load messages")
	}

	mem := store.NewMemoryStore()
	go janitor(context.Background(), mem, cfg.GameTTL)

	srv := httpserver.New(cfg, mem, msgs)
	log.Info().Str("addr", cfg.Addr()).Int("messages", msgs.Len()).Msg("starting cryptogram server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// janitor prunes idle games every ttl/4.
func janitor(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(max(ttl/4, time.Second))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Prune(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("pruned", n).Int("games", st.Len()).Msg("idle games pruned")
			}
		}
	}
}
