// Package seed loads a YAML corpus of labeled examples and trains a classifier with it at startup.
package seed

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/hickeroar/wordbayes/bayes"
	"github.com/hickeroar/wordbayes/tokenize"
)

// Category is a label of a seed example. A zero weight means the default weight.
type Category struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// Example is one labeled training example, given either as free text or as words.
type Example struct {
	Text       string     `yaml:"text"`
	Words      []string   `yaml:"words"`
	Categories []Category `yaml:"categories"`
}

// Corpus is the seed file document.
type Corpus struct {
	Examples []Example `yaml:"examples"`
}

// Load decodes and validates a corpus, reporting every invalid example at once.
func Load(r io.Reader) (*Corpus, error) {
	var corpus Corpus
	if err := yaml.NewDecoder(r).Decode(&corpus); err != nil {
		if errors.Is(err, io.EOF) {
			return &corpus, nil
		}
		return nil, fmt.Errorf("decode seed corpus: %w", err)
	}

	if err := corpus.validate(); err != nil {
		return nil, err
	}
	return &corpus, nil
}

// LoadFile reads a corpus from path.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path) // nolint
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func (c *Corpus) validate() error {
	errs := new(multierror.Error)
	for i, ex := range c.Examples {
		if ex.Text != "" && len(ex.Words) > 0 {
			errs = multierror.Append(errs, fmt.Errorf("example %d: text and words are mutually exclusive", i))
		}
		if len(ex.Categories) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("example %d: no categories", i))
		}
		for _, cat := range ex.Categories {
			if cat.Name == "" {
				errs = multierror.Append(errs, fmt.Errorf("example %d: empty category name", i))
			}
			if cat.Weight < 0 || math.IsNaN(cat.Weight) || math.IsInf(cat.Weight, 0) {
				errs = multierror.Append(errs, fmt.Errorf("example %d: invalid weight %v for %q", i, cat.Weight, cat.Name))
			}
		}
	}
	return errs.ErrorOrNil()
}

// Apply trains classifier with every example, tokenizing text ones with tok.
// It returns the number of examples that produced at least one word.
func (c *Corpus) Apply(classifier *bayes.Classifier, tok *tokenize.Tokenizer) (int, error) {
	trained := 0
	for i, ex := range c.Examples {
		words := ex.Words
		if ex.Text != "" {
			words = tok.Tokenize(ex.Text)
		}
		if len(words) == 0 {
			continue
		}

		refs := make([]bayes.CategoryRef, 0, len(ex.Categories))
		for _, cat := range ex.Categories {
			if cat.Weight == 0 {
				refs = append(refs, bayes.Name(cat.Name))
				continue
			}
			refs = append(refs, bayes.Weighted{Name: cat.Name, Weight: cat.Weight})
		}

		if err := classifier.Train(words, refs...); err != nil {
			return trained, fmt.Errorf("train seed example %d: %w", i, err)
		}
		trained++
	}
	return trained, nil
}
