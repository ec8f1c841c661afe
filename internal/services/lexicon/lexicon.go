package lexicon

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Lexicon decides whether a token is a real word
type Lexicon interface {
	IsWord(token string) bool
}

// WordList is a lexicon backed by a set of lowercase words
type WordList struct {
	words map[string]struct{}
}

// AcceptAll is the lexicon used when no word list is configured
type AcceptAll struct{}

// IsWord always returns true
func (AcceptAll) IsWord(string) bool {
	return true
}

// Load reads a word list with one word per line. Blank lines and lines
// starting with # are skipped. An empty path yields AcceptAll.
func Load(path string) (Lexicon, error) {
	if path == "" {
		return AcceptAll{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open lexicon %s", path)
	}
	defer f.Close()

	wl, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read lexicon %s", path)
	}

	logrus.WithField("module", "lexicon").
		WithField("words", len(wl.words)).
		Info("loaded lexicon")
	return wl, nil
}

// Read builds a word list from r
func Read(r io.Reader) (*WordList, error) {
	words := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &WordList{words: words}, nil
}

// IsWord reports whether token is in the list
func (w *WordList) IsWord(token string) bool {
	_, ok := w.words[strings.ToLower(token)]
	return ok
}
