package bayes

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

// Entry is one ranked category. LogScore is the raw log posterior and is only set by Classify.
type Entry struct {
	Category string
	Score    float64
	LogScore float64
}

// Ranking is a finite, best-first list of categories. It can be iterated any number of times.
type Ranking []Entry

// Len returns the number of ranked categories.
func (r Ranking) Len() int {
	return len(r)
}

// Best returns the top entry, if any.
func (r Ranking) Best() (Entry, bool) {
	if len(r) == 0 {
		return Entry{}, false
	}
	return r[0], true
}

// All yields (category, score) pairs in rank order.
func (r Ranking) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, e := range r {
			if !yield(e.Category, e.Score) {
				return
			}
		}
	}
}

// RankByAverageProbability scores each category by the mean of Probability over words and
// returns the categories with a positive average, best first.
func (c *Classifier) RankByAverageProbability(words []string) (Ranking, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: average ranking needs at least one word", ErrInvalidState)
	}

	ranking := make(Ranking, 0)
	for _, name := range c.store.Names() {
		sum := 0.0
		for _, word := range words {
			sum += c.Probability(name, word)
		}
		avg := sum / float64(len(words))
		if avg > 0 {
			ranking = append(ranking, Entry{Category: name, Score: avg})
		}
	}

	slices.SortStableFunc(ranking, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranking, nil
}

// Classify ranks every known category against words using Laplace-smoothed log posteriors.
//
// Entries are ordered by log posterior, best first. Score is maxLogScore / LogScore, which is
// 1 for the best category and shrinks toward 0 as a category falls behind.
func (c *Classifier) Classify(words []string) (Ranking, error) {
	total := c.store.TotalWeight()
	if total == 0 {
		return nil, fmt.Errorf("%w: classifier has not been trained", ErrInvalidState)
	}
	if !isFinite(total) {
		return nil, fmt.Errorf("%w: total weight is not finite", ErrInvalidState)
	}

	frequency := make(map[string]float64, len(words))
	for _, word := range words {
		frequency[word]++
	}
	// summation order must not depend on map iteration, or equal categories stop tying
	queryWords := slices.Sorted(maps.Keys(frequency))

	vocabSize := float64(c.store.VocabularySize())
	maxScore := math.Inf(-1)
	ranking := make(Ranking, 0)

	for _, name := range c.store.Names() {
		rec, _ := c.store.Lookup(name)

		score := math.Log(rec.DocumentCount() / total)
		for _, word := range queryWords {
			count := frequency[word]
			wordFreq, _ := rec.WordWeight(word)
			smoothed := (wordFreq + 1.0) / (rec.WordCount() + vocabSize)
			score += count * math.Log(smoothed)
		}

		maxScore = max(maxScore, score)
		ranking = append(ranking, Entry{Category: name, LogScore: score})
	}

	for i := range ranking {
		ranking[i].Score = relativeScore(maxScore, ranking[i].LogScore)
	}

	slices.SortStableFunc(ranking, func(a, b Entry) int {
		return cmp.Compare(b.LogScore, a.LogScore)
	})

	return ranking, nil
}

// relativeScore returns maxScore / score. The leading category always gets exactly 1, which
// also covers a leader whose log score is 0.
func relativeScore(maxScore, score float64) float64 {
	if score == maxScore {
		return 1.0
	}
	return maxScore / score
}
