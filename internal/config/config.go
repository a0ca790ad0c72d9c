// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first (if present), so
// local development does not need exported variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server.
type Config struct {
	Port         string `env:"PORT"          envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	LogPretty    bool   `env:"LOG_PRETTY"    envDefault:"false"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// Word sources. Empty paths use the embedded lists.
	StartWordsFile string `env:"WORDS_START_FILE"`
	DictionaryFile string `env:"DICTIONARY_FILE"`
	DictionaryDSN  string `env:"DICTIONARY_DSN"`
	DictionaryLang string `env:"DICTIONARY_LANG" envDefault:"en"`

	TokenSecret string        `env:"GAME_TOKEN_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL    time.Duration `env:"GAME_TOKEN_TTL"    envDefault:"24h"`

	// Opt-in word rules; both are off by default.
	MinWordLength  int  `env:"MIN_WORD_LENGTH"  envDefault:"0"`
	RejectRootWord bool `env:"REJECT_ROOT_WORD" envDefault:"false"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MinWordLength < 0 {
		return Config{}, fmt.Errorf("MIN_WORD_LENGTH must be >= 0, got %d", cfg.MinWordLength)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("GAME_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
