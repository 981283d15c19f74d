// cmd/cryptogram-ssh/main.go
//
// Serves the terminal cryptogram over SSH.

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/messages"
	"github.com/robalobadob/cryptogram/internal/sshserver"
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

	rt, err := sshserver.New(cfg, msgs)
	if err != nil {
		log.Fatal().Err(err).Msg("build ssh server")
	}
	if err := rt.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ssh server exited")
	}
}
