// Package assets bundles the default word lists shipped with the server.
//
//   - start.txt:      candidate root words offered to players.
//   - dictionary.txt: English words accepted by the in-memory spell checker.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

// ReadLines splits r into one lowercase word per line.
// Surrounding whitespace is trimmed; blank lines and "#" comments are skipped.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// StartWords returns the embedded root word list.
func StartWords() ([]string, error) {
	return readLines("start.txt")
}

// DictionaryWords returns the embedded English dictionary.
func DictionaryWords() ([]string, error) {
	return readLines("dictionary.txt")
}
