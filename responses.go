package main

import (
	"github.com/hickeroar/wordbayes/bayes"
	"github.com/hickeroar/wordbayes/bayes/store"
)

// TrainingClassifierResponse reports the outcome of a mutation and the resulting categories
type TrainingClassifierResponse struct {
	Success    bool
	Categories map[string]store.Summary
}

// NewTrainingClassifierResponse Gets an assembled instance of TrainingClassifierResponse
func NewTrainingClassifierResponse(c *ClassifierAPI, success bool) *TrainingClassifierResponse {
	return &TrainingClassifierResponse{
		Success:    success,
		Categories: c.classifier.Store().Summaries(),
	}
}

// InfoClassifierResponse describes everything the classifier has learned so far
type InfoClassifierResponse struct {
	TotalWeight    float64
	VocabularySize int
	Categories     map[string]store.Summary
}

// NewInfoClassifierResponse Gets an assembled instance of InfoClassifierResponse
func NewInfoClassifierResponse(c *ClassifierAPI) *InfoClassifierResponse {
	st := c.classifier.Store()
	return &InfoClassifierResponse{
		TotalWeight:    st.TotalWeight(),
		VocabularySize: st.VocabularySize(),
		Categories:     st.Summaries(),
	}
}

// RankedCategory is one ranking entry on the wire. LogScore is nil for average rankings.
type RankedCategory struct {
	Category string
	Score    float64
	LogScore *float64 `json:",omitempty"`
}

// ClassificationResponse carries a ranking and its leading category
type ClassificationResponse struct {
	Category string
	Score    float64
	Ranking  []RankedCategory
}

// NewClassificationResponse Gets an assembled instance of ClassificationResponse.
// withLogScores is set for Classify rankings, where a log score of 0 is a real value.
func NewClassificationResponse(ranking bayes.Ranking, withLogScores bool) *ClassificationResponse {
	best, _ := ranking.Best()
	entries := make([]RankedCategory, 0, ranking.Len())
	for _, e := range ranking {
		entry := RankedCategory{Category: e.Category, Score: e.Score}
		if withLogScores {
			entry.LogScore = &e.LogScore
		}
		entries = append(entries, entry)
	}
	return &ClassificationResponse{
		Category: best.Category,
		Score:    best.Score,
		Ranking:  entries,
	}
}

// ProbabilityResponse lists the elementary probabilities of one word for one category
type ProbabilityResponse struct {
	Category    string
	Word        string
	Prior       float64
	Likelihood  float64
	Predictor   float64
	Probability float64
}

// NewProbabilityResponse Gets an assembled instance of ProbabilityResponse
func NewProbabilityResponse(classifier *bayes.Classifier, category, word string) *ProbabilityResponse {
	return &ProbabilityResponse{
		Category:    category,
		Word:        word,
		Prior:       classifier.PriorProbability(category),
		Likelihood:  classifier.Likelihood(word, category),
		Predictor:   classifier.PriorProbabilityPredictor(word),
		Probability: classifier.Probability(category, word),
	}
}
