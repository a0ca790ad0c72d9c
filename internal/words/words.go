// internal/words/words.go
//
// Root word source for the game.
//
// Responsibilities:
//   - Load the list of candidate root words once at startup, either from a
//     file named by the caller (WORDS_START_FILE) or from the embedded default.
//   - Pick a uniformly random root word, falling back to DefaultRoot when the
//     list is empty.
//
// Loading rules:
//   • One word per line; lines are trimmed and lowercased.
//   • Blank lines and "#" comments are dropped.
//   • A missing/unreadable resource or an empty result is an error; the caller
//     treats it as fatal.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/robalobadob/wordscramble/assets"
)

// DefaultRoot is used whenever a root must be chosen from an empty list.
const DefaultRoot = "silkworm"

// ErrEmptyList is returned by Load when the resource contains no words.
var ErrEmptyList = errors.New("words: root word list is empty")

// List is an immutable, ordered list of candidate root words.
type List []string

// Load reads the root word list from path, or from the embedded start.txt
// when path is empty.
func Load(path string) (List, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.StartWords()
		if err != nil {
			return nil, fmt.Errorf("words: read embedded list: %w", err)
		}
	} else {
		list, err = readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("words: read %s: %w", path, err)
		}
	}
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return List(list), nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Random returns a cryptographically random element of l.
// If l is empty, it returns DefaultRoot.
func (l List) Random() string {
	if len(l) == 0 {
		return DefaultRoot
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l))))
	if err != nil {
		return l[0]
	}
	return l[n.Int64()]
}

// Len reports the number of loaded root words.
func (l List) Len() int { return len(l) }
