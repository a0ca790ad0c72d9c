// internal/dictionary/dictionary.go
//
// Spell-checking backends used by the reality check.
//
// A Checker answers one question: "is this word, in this language, spelled
// correctly?". Two implementations are provided:
//   - Set:    in-memory word set per language (embedded list or a plain file).
//   - SQLite: dictionary table in a SQLite database (see sqlite.go).
//
// Words are expected to be normalized (lowercase, trimmed) by the caller.

package dictionary

import (
	"context"
	"fmt"
	"os"

	"github.com/robalobadob/wordscramble/assets"
)

// DefaultLang is the language tag used when none is configured.
const DefaultLang = "en"

// Checker reports whether word is a recognized dictionary word in lang.
type Checker interface {
	Check(ctx context.Context, word, lang string) (bool, error)
}

// Set is an in-memory Checker. It is read-only after construction.
type Set struct {
	langs map[string]map[string]struct{}
}

// NewSet builds a Set holding words under lang.
func NewSet(lang string, words []string) *Set {
	s := &Set{langs: make(map[string]map[string]struct{})}
	s.add(lang, words)
	return s
}

func (s *Set) add(lang string, words []string) {
	m, ok := s.langs[lang]
	if !ok {
		m = make(map[string]struct{}, len(words))
		s.langs[lang] = m
	}
	for _, w := range words {
		m[w] = struct{}{}
	}
}

// Check implements Checker. Unknown languages recognize nothing.
func (s *Set) Check(_ context.Context, word, lang string) (bool, error) {
	m, ok := s.langs[lang]
	if !ok {
		return false, nil
	}
	_, ok = m[word]
	return ok, nil
}

// Len reports how many words are known for lang.
func (s *Set) Len(lang string) int { return len(s.langs[lang]) }

// LoadWords returns the dictionary word list from path, or the embedded
// English dictionary when path is empty.
func LoadWords(path string) ([]string, error) {
	if path == "" {
		ws, err := assets.DictionaryWords()
		if err != nil {
			return nil, fmt.Errorf("dictionary: read embedded list: %w", err)
		}
		return ws, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()
	ws, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	return ws, nil
}
