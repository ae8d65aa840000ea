// Package bayes implements a weighted multinomial Naive Bayes classifier over
// pre-tokenized word sequences.
package bayes

import (
	"errors"

	"github.com/hickeroar/wordbayes/bayes/store"
)

var (
	// ErrInvalidState is returned when an operation needs a non-zero denominator
	// the current store or input cannot provide.
	ErrInvalidState = errors.New("invalid classifier state")
	// ErrInvalidWeight is returned for category weights that are not finite and positive.
	ErrInvalidWeight = errors.New("invalid category weight")
	// ErrInvalidCategory is returned for empty category names.
	ErrInvalidCategory = errors.New("invalid category name")
)

// Classifier trains on and classifies word sequences using a bound Store.
// It keeps no state of its own; all learning lives in the store.
type Classifier struct {
	store *store.Store
}

// NewClassifier returns a Classifier bound to st. A nil st binds a fresh store.
// Passing the same store to several classifiers shares what they learn.
func NewClassifier(st *store.Store) *Classifier {
	if st == nil {
		st = store.New()
	}
	return &Classifier{store: st}
}

// Store returns the statistics store this classifier reads and trains.
func (c *Classifier) Store() *store.Store {
	return c.store
}
