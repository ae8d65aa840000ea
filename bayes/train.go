package bayes

import (
	"fmt"
	"math"

	"github.com/hickeroar/wordbayes/bayes/store"
)

// Train learns that words belong to every one of categories.
//
// Repeated words count once per occurrence, and a batch with several categories counts the
// full word list against each of them. Empty words or categories is a no-op. Invalid
// categories, or a batch that would overflow a running total, are rejected before anything
// is learned.
func (c *Classifier) Train(words []string, categories ...CategoryRef) error {
	if len(words) == 0 || len(categories) == 0 {
		return nil
	}

	cats, err := normalize(categories)
	if err != nil {
		return err
	}
	if err := c.checkTotals(words, cats); err != nil {
		return err
	}

	for _, cat := range cats {
		c.store.EnsureCategory(cat.Name)
		c.store.AddCategoryWeight(cat)
		c.store.AddToTotalWeight(cat.Weight)

		for _, word := range words {
			c.store.AddVocabularyWeight(word, cat.Weight)
			c.store.AddWordOccurrence(word, cat)
			c.store.AddWordWeight(cat)
		}
	}

	return nil
}

// checkTotals fails when applying the batch would leave totalWeight, a category's wordCount or
// a vocabulary weight outside the finite float64 range. Per-word likelihoods and document
// counts are bounded by those, so they need no separate check.
func (c *Classifier) checkTotals(words []string, cats []store.Category) error {
	batch := 0.0
	perCategory := make(map[string]float64, len(cats))
	for _, cat := range cats {
		batch += cat.Weight
		perCategory[cat.Name] += cat.Weight
	}

	if !isFinite(c.store.TotalWeight() + batch) {
		return fmt.Errorf("%w: total weight would overflow", ErrInvalidWeight)
	}

	n := float64(len(words))
	for name, weight := range perCategory {
		wordCount := 0.0
		if rec, ok := c.store.Lookup(name); ok {
			wordCount = rec.WordCount()
		}
		if !isFinite(wordCount + weight*n) {
			return fmt.Errorf("%w: word count of %q would overflow", ErrInvalidWeight, name)
		}
	}

	occurrences := make(map[string]float64, len(words))
	for _, word := range words {
		occurrences[word]++
	}
	for word, count := range occurrences {
		current, _ := c.store.VocabularyWeight(word)
		if !isFinite(current + batch*count) {
			return fmt.Errorf("%w: vocabulary weight of %q would overflow", ErrInvalidWeight, word)
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
