// Package tokenize turns free text into the word sequences the classifier trains on.
package tokenize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultLanguage is the stemming language used when none is configured.
const DefaultLanguage = "english"

var errUnsupportedLanguage = errors.New("unsupported stemming language")

// Options configures a Tokenizer.
type Options struct {
	Stem      bool   // apply snowball stemming to every token
	Language  string // snowball language, defaults to english
	MinLength int    // tokens shorter than this many runes are dropped
}

// Tokenizer normalizes, splits and optionally stems text.
type Tokenizer struct {
	opts Options
}

// New returns a Tokenizer for opts. It fails if stemming is enabled for a language
// snowball does not know.
func New(opts Options) (*Tokenizer, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Stem {
		if _, err := snowball.Stem("testing", opts.Language, true); err != nil {
			return nil, fmt.Errorf("%w %q: %v", errUnsupportedLanguage, opts.Language, err)
		}
	}
	return &Tokenizer{opts: opts}, nil
}

// Tokenize returns the words of text in order, duplicates kept. Safe for concurrent use.
func (t *Tokenizer) Tokenize(text string) []string {
	// casers carry state, so one per call
	text = cases.Fold().String(norm.NFKC.String(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if word := t.word(field); word != "" {
			words = append(words, word)
		}
	}
	return words
}

// Word normalizes a single token the same way Tokenize does, returning "" if it would be dropped.
func (t *Tokenizer) Word(token string) string {
	words := t.Tokenize(token)
	if len(words) != 1 {
		return ""
	}
	return words[0]
}

func (t *Tokenizer) word(field string) string {
	if utf8.RuneCountInString(field) < t.opts.MinLength {
		return ""
	}
	if !t.opts.Stem {
		return field
	}
	stemmed, err := snowball.Stem(field, t.opts.Language, true)
	if err != nil || stemmed == "" {
		return field
	}
	return stemmed
}
