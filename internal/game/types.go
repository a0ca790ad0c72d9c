// internal/game/types.go
//
// Core type definitions for the word scramble game.
// Defines:
//   - Game: state for a single session (root word, accepted words, score).
//   - Kind / ValidationError: why a submitted word was rejected.

package game

import "fmt"

// Game holds the state of a single session.
//
// Invariants: every entry of UsedWords is non-empty, lowercase, trimmed,
// unique, and spellable from RootWord; Score == len(UsedWords).
type Game struct {
	ID        string   // Unique game identifier (random hex string).
	RootWord  string   // Word whose letters every submission must come from.
	UsedWords []string // Accepted words, most recent first.
	Score     int      // One point per accepted word.
}

// Kind identifies which check rejected a word.
type Kind string

const (
	KindAlreadyUsed      Kind = "already_used"
	KindNotConstructible Kind = "not_constructible"
	KindNotARealWord     Kind = "not_a_real_word"
	KindTooShort         Kind = "too_short"
	KindRootWord         Kind = "root_word"
)

// ValidationError is a user-facing rejection. The game state is unchanged
// whenever one is returned.
type ValidationError struct {
	Kind    Kind
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func wordError(kind Kind, title, message string) *ValidationError {
	return &ValidationError{Kind: kind, Title: title, Message: message}
}
