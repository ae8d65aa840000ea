// Package store keeps the aggregated word/category statistics a classifier learns from.
//
// A Store only ever grows: every mutation adds weight, nothing is decremented or removed.
// It is not safe for concurrent use; callers serialize training against queries.
package store

import "sort"

// Store represents all learned aggregates and enables us to interact with them.
type Store struct {
	totalWeight float64            // Sum of all category weights ever applied
	categories  map[string]*Record // Map of category names to their records
	vocabulary  map[string]float64 // Map of words to their weight across all categories
}

// New returns a pointer to an empty Store
func New() *Store {
	return &Store{
		categories: make(map[string]*Record),
		vocabulary: make(map[string]float64),
	}
}

// EnsureCategory returns the record for a category, creating an empty one if needed
func (s *Store) EnsureCategory(name string) *Record {
	if rec, ok := s.categories[name]; ok {
		return rec
	}

	rec := newRecord(name)
	s.categories[name] = rec

	return rec
}

// AddToTotalWeight adds weight to the global total
func (s *Store) AddToTotalWeight(weight float64) {
	s.totalWeight += weight
}

// AddCategoryWeight adds the category weight to its document count
func (s *Store) AddCategoryWeight(cat Category) {
	s.EnsureCategory(cat.Name).documentCount += cat.Weight
}

// AddWordOccurrence adds the category weight to the word's weight within that category
func (s *Store) AddWordOccurrence(word string, cat Category) {
	s.EnsureCategory(cat.Name).likelihood[word] += cat.Weight
}

// AddWordWeight adds the category weight to its word count
func (s *Store) AddWordWeight(cat Category) {
	s.EnsureCategory(cat.Name).wordCount += cat.Weight
}

// AddVocabularyWeight adds weight to the word's global vocabulary weight
func (s *Store) AddVocabularyWeight(word string, weight float64) {
	s.vocabulary[word] += weight
}

// TotalWeight returns the sum of all category weights applied during training
func (s *Store) TotalWeight() float64 {
	return s.totalWeight
}

// Lookup returns a category record without creating it
func (s *Store) Lookup(name string) (*Record, bool) {
	rec, ok := s.categories[name]
	return rec, ok
}

// Names returns the known category names in lexical order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VocabularyWeight returns the global weight of a word
func (s *Store) VocabularyWeight(word string) (float64, bool) {
	val, ok := s.vocabulary[word]
	return val, ok
}

// VocabularySize returns the number of distinct words ever observed
func (s *Store) VocabularySize() int {
	return len(s.vocabulary)
}

// Summaries returns a value snapshot of every category, safe to hand out to callers
func (s *Store) Summaries() map[string]Summary {
	out := make(map[string]Summary, len(s.categories))
	for name, rec := range s.categories {
		out[name] = rec.summary()
	}
	return out
}
