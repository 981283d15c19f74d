// internal/config/logging.go
//
// Global zerolog setup from the loaded configuration.

package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger points the global zerolog logger at w using the
// configured level and format.
func (c Config) ConfigureLogger(w io.Writer) {
	zerolog.SetGlobalLevel(c.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
