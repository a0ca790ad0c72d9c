package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	roots, err := words.Load(cfg.StartWordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load root word list")
	}
	log.Info().Int("roots", roots.Len()).Msg("root words loaded")

	dict, closeDict := openDictionary(cfg)
	defer closeDict()

	validator := game.NewValidator(dict, cfg.DictionaryLang, game.Rules{
		MinLength:  cfg.MinWordLength,
		RejectRoot: cfg.RejectRootWord,
	})

	srv := httpserver.New(httpserver.Options{
		Roots:        roots,
		Validator:    validator,
		Store:        store.NewMemoryStore(),
		TokenSecret:  cfg.TokenSecret,
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
		SecureCookie: os.Getenv("NODE_ENV") == "production",
	})
	log.Info().Str("port", cfg.Port).Msg("starting wordscramble server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openDictionary builds the spell checker: SQLite when DICTIONARY_DSN is set,
// otherwise an in-memory set. Any failure is fatal.
func openDictionary(cfg config.Config) (dictionary.Checker, func()) {
	ws, err := dictionary.LoadWords(cfg.DictionaryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary words")
	}

	if cfg.DictionaryDSN == "" {
		set := dictionary.NewSet(cfg.DictionaryLang, ws)
		log.Info().Str("lang", cfg.DictionaryLang).Int("words", set.Len(cfg.DictionaryLang)).Msg("dictionary ready (memory)")
		return set, func() {}
	}

	ctx := context.Background()
	db, err := dictionary.OpenSQLite(ctx, cfg.DictionaryDSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.DictionaryDSN).Msg("failed to open dictionary database")
	}
	if _, err := db.Seed(ctx, cfg.DictionaryLang, ws); err != nil {
		log.Fatal().Err(err).Msg("failed to seed dictionary database")
	}
	n, err := db.Count(ctx, cfg.DictionaryLang)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count dictionary words")
	}
	log.Info().Str("lang", cfg.DictionaryLang).Int("words", n).Msg("dictionary ready (sqlite)")
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close dictionary database")
		}
	}
}
