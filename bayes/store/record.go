package store

// Category is a normalized, weighted training label. Two values with the same Name refer to
// the same learned category.
type Category struct {
	Name   string
	Weight float64
}

// Record holds the learned aggregates of a single category
type Record struct {
	name          string
	documentCount float64            // Sum of weights of training examples assigned to this category
	wordCount     float64            // Total word-weight mass assigned to this category
	likelihood    map[string]float64 // Map of words to their accumulated weight in this category
}

// newRecord returns a pointer to an empty Record
func newRecord(name string) *Record {
	return &Record{
		name:       name,
		likelihood: make(map[string]float64),
	}
}

// Name returns the category name
func (r *Record) Name() string {
	return r.name
}

// DocumentCount returns the accumulated weight of examples trained on this category
func (r *Record) DocumentCount() float64 {
	return r.documentCount
}

// WordCount returns the accumulated word weight of this category
func (r *Record) WordCount() float64 {
	return r.wordCount
}

// WordWeight returns the accumulated weight of a word within this category
func (r *Record) WordWeight(word string) (float64, bool) {
	val, ok := r.likelihood[word]
	return val, ok
}

// DistinctWords returns how many different words were observed in this category
func (r *Record) DistinctWords() int {
	return len(r.likelihood)
}

// Summary is a value snapshot of a category's counters.
type Summary struct {
	DocumentCount float64
	WordCount     float64
	DistinctWords int
}

func (r *Record) summary() Summary {
	return Summary{
		DocumentCount: r.documentCount,
		WordCount:     r.wordCount,
		DistinctWords: len(r.likelihood),
	}
}
