// internal/config/config.go
//
// Runtime configuration for the server and terminal clients.
// Responsibilities:
//   - Read typed, range-checked settings from the environment.
//   - Fall back to development defaults, except JWT_SECRET in production.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultPort           = 5175
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultClientOrigin   = "http://localhost:5173"
	defaultDevSecret      = "dev_secret_change_me"
	defaultDailySalt      = "local_dev_salt"
	defaultTokenTTL       = 24 * time.Hour
	defaultGameTTL        = 2 * time.Hour
	defaultMaxAttempts    = 10000
	defaultSSHHost        = "0.0.0.0"
	defaultSSHPort        = 2222
	defaultSSHHostKeyPath = ".data/host_ed25519"
	defaultSSHIdleTimeout = 10 * time.Minute
	defaultSSHMaxSessions = 32
)

// Config captures startup settings for the server and terminal clients.
type Config struct {
	Port         int
	LogLevel     zerolog.Level
	LogFormat    string
	ClientOrigin string
	Production   bool

	JWTSecret string
	TokenTTL  time.Duration
	GameTTL   time.Duration

	Message      string
	MessagesFile string
	MaxAttempts  int
	DailySalt    string

	SSHHost        string
	SSHPort        int
	SSHHostKeyPath string
	SSHIdleTimeout time.Duration
	SSHMaxSessions int
}

// LoadFromEnv loads runtime configuration from environment variables.
// Callers load any .env file first.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Production:   strings.EqualFold(os.Getenv("APP_ENV"), "production"),
		ClientOrigin: readOrDefault("CLIENT_ORIGIN", defaultClientOrigin),
		Message:      os.Getenv("CRYPTOGRAM_MESSAGE"),
		MessagesFile: os.Getenv("CRYPTOGRAM_MESSAGES_FILE"),
		DailySalt:    readOrDefault("DAILY_SALT", defaultDailySalt),
	}

	var err error
	if cfg.Port, err = readInt("PORT", defaultPort, 1, 65535); err != nil {
		return Config{}, err
	}

	levelName := readOrDefault("LOG_LEVEL", defaultLogLevel)
	if cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(levelName)); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL must be a zerolog level: %w", err)
	}

	cfg.LogFormat = strings.ToLower(readOrDefault("LOG_FORMAT", defaultLogFormat))
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or console")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Production {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=production")
		}
		cfg.JWTSecret = defaultDevSecret
	}

	if cfg.TokenTTL, err = readDuration("TOKEN_TTL", defaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.GameTTL, err = readDuration("GAME_TTL", defaultGameTTL); err != nil {
		return Config{}, err
	}
	if cfg.MaxAttempts, err = readInt("DERANGEMENT_MAX_ATTEMPTS", defaultMaxAttempts, 1, 1_000_000); err != nil {
		return Config{}, err
	}

	if cfg.SSHHost, err = readRequiredOrDefault("SSH_HOST", defaultSSHHost); err != nil {
		return Config{}, err
	}
	if cfg.SSHPort, err = readInt("SSH_PORT", defaultSSHPort, 1, 65535); err != nil {
		return Config{}, err
	}
	hostKeyPath, err := readRequiredOrDefault("SSH_HOST_KEY_PATH", defaultSSHHostKeyPath)
	if err != nil {
		return Config{}, err
	}
	cfg.SSHHostKeyPath = filepath.Clean(hostKeyPath)
	if cfg.SSHHostKeyPath == "." {
		return Config{}, fmt.Errorf("SSH_HOST_KEY_PATH must not resolve to current directory")
	}
	if cfg.SSHIdleTimeout, err = readDuration("SSH_IDLE_TIMEOUT", defaultSSHIdleTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SSHMaxSessions, err = readInt("SSH_MAX_SESSIONS", defaultSSHMaxSessions, 1, 1024); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// SSHAddr returns the SSH listen address.
func (c Config) SSHAddr() string { return fmt.Sprintf("%s:%d", c.SSHHost, c.SSHPort) }

func readOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}
