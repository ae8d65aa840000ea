package bayes

// PriorProbability returns P(C): the category's share of word weight over the total
// training weight. Unknown categories score 0.
func (c *Classifier) PriorProbability(category string) float64 {
	rec, ok := c.store.Lookup(category)
	if !ok || c.store.TotalWeight() == 0 {
		return 0.0
	}
	return rec.WordCount() / c.store.TotalWeight()
}

// Likelihood returns P(word|C), or 0 if the word was never seen in that category.
func (c *Classifier) Likelihood(word, category string) float64 {
	if _, ok := c.store.VocabularyWeight(word); !ok {
		return 0.0
	}

	rec, ok := c.store.Lookup(category)
	if !ok {
		return 0.0
	}
	weight, ok := rec.WordWeight(word)
	if !ok || rec.WordCount() == 0 {
		return 0.0
	}

	return weight / rec.WordCount()
}

// PriorProbabilityPredictor returns P(word) over the whole vocabulary, or 0 if unseen.
func (c *Classifier) PriorProbabilityPredictor(word string) float64 {
	weight, ok := c.store.VocabularyWeight(word)
	if !ok || c.store.TotalWeight() == 0 {
		return 0.0
	}
	return weight / c.store.TotalWeight()
}

// Probability returns P(C|word) = P(word|C) * P(C) / P(word), unsmoothed.
// An undefined posterior is reported as 0.
func (c *Classifier) Probability(category, word string) float64 {
	predictor := c.PriorProbabilityPredictor(word)
	if predictor == 0 {
		return 0.0
	}
	return c.Likelihood(word, category) * c.PriorProbability(category) / predictor
}
