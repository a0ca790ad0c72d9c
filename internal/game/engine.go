// internal/game/engine.go
//
// Core game engine for a word scramble session.
// Responsibilities:
//   - Start and restart games with a random root word.
//   - Normalize submissions (lowercase, trimmed).
//   - Validate words in a fixed order: originality, feasibility, optional
//     local rules, then the dictionary lookup.
//   - Produce the next state; the previous *Game is never mutated.
//
// Notes:
//   - Root words come from words.List (DefaultRoot when the list is empty).
//   - The dictionary is the only check that may block or fail; it runs last.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Start constructs a new game with a random root word from list.
func Start(list words.List) *Game {
	return &Game{
		ID:        randomID(),
		RootWord:  list.Random(),
		UsedWords: []string{},
	}
}

// Restart returns a fresh game under the same ID: score 0, no used words,
// newly selected root word.
func Restart(g *Game, list words.List) *Game {
	return &Game{
		ID:        g.ID,
		RootWord:  list.Random(),
		UsedWords: []string{},
	}
}

// Normalize lowercases raw and trims surrounding whitespace.
func Normalize(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// IsOriginal reports whether word has not been accepted yet.
func IsOriginal(word string, used []string) bool {
	for _, u := range used {
		if u == word {
			return false
		}
	}
	return true
}

// IsPossible reports whether word can be spelled from root's letters, using
// each letter of root at most as many times as it appears there.
func IsPossible(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := indexRune(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// Rules are optional checks on top of the three core ones. The zero value
// disables them, leaving short words and the root word itself to the
// dictionary's judgement.
type Rules struct {
	MinLength  int  // reject words with fewer letters; 0 disables
	RejectRoot bool // reject the root word itself
}

// Validator runs the checks for SubmitWord.
type Validator struct {
	dict  dictionary.Checker
	lang  string
	rules Rules
}

// NewValidator returns a Validator consulting dict for lang.
func NewValidator(dict dictionary.Checker, lang string, rules Rules) *Validator {
	if lang == "" {
		lang = dictionary.DefaultLang
	}
	return &Validator{dict: dict, lang: lang, rules: rules}
}

// IsReal reports whether word is recognized by the dictionary.
func (v *Validator) IsReal(ctx context.Context, word string) (bool, error) {
	return v.dict.Check(ctx, word, v.lang)
}

// SubmitWord validates raw against g and returns the next state.
//
// Empty input (after normalization) returns g and a nil error. A rejected
// word returns g and a *ValidationError. A dictionary failure returns g and
// a wrapped error. Otherwise a new *Game is returned with the word prepended
// and the score incremented.
func (v *Validator) SubmitWord(ctx context.Context, g *Game, raw string) (*Game, error) {
	answer := Normalize(raw)
	if answer == "" {
		return g, nil
	}

	if !IsOriginal(answer, g.UsedWords) {
		return g, wordError(KindAlreadyUsed, "Word used already", "Be more original!")
	}
	if !IsPossible(answer, g.RootWord) {
		return g, wordError(KindNotConstructible, "Word not possible",
			fmt.Sprintf("You can't spell that word from '%s'!", g.RootWord))
	}
	if err := v.checkRules(answer, g.RootWord); err != nil {
		return g, err
	}

	ok, err := v.IsReal(ctx, answer)
	if err != nil {
		return g, fmt.Errorf("check %q: %w", answer, err)
	}
	if !ok {
		return g, wordError(KindNotARealWord, "Word not recognized", "You can't just make them up, you know!")
	}

	used := make([]string, 0, len(g.UsedWords)+1)
	used = append(used, answer)
	used = append(used, g.UsedWords...)
	return &Game{
		ID:        g.ID,
		RootWord:  g.RootWord,
		UsedWords: used,
		Score:     g.Score + 1,
	}, nil
}

func (v *Validator) checkRules(word, root string) error {
	if n := v.rules.MinLength; n > 0 && len([]rune(word)) < n {
		return wordError(KindTooShort, "Word too short",
			fmt.Sprintf("Words need at least %d letters!", n))
	}
	if v.rules.RejectRoot && word == root {
		return wordError(KindRootWord, "Word is the root", "That's just the word you started with!")
	}
	return nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
