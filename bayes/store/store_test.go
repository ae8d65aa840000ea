package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCategoryCreatesAndReturnsRecord(t *testing.T) {
	st := New()
	rec := st.EnsureCategory("spam")

	require.NotNil(t, rec)
	assert.Equal(t, "spam", rec.Name())
	assert.Zero(t, rec.DocumentCount())
	assert.Zero(t, rec.WordCount())
	assert.Zero(t, rec.DistinctWords())

	_, ok := st.Lookup("spam")
	assert.True(t, ok, "expected spam category to exist after ensure")
}

func TestEnsureCategoryIsIdempotent(t *testing.T) {
	st := New()
	spam := Category{Name: "spam", Weight: 2}

	first := st.EnsureCategory("spam")
	st.AddCategoryWeight(spam)
	st.AddWordOccurrence("buy", spam)
	st.AddWordWeight(spam)

	second := st.EnsureCategory("spam")
	assert.Same(t, first, second, "expected the same record for an existing category")
	assert.InDelta(t, 2.0, second.DocumentCount(), 1e-12)
	assert.InDelta(t, 2.0, second.WordCount(), 1e-12)
	w, ok := second.WordWeight("buy")
	require.True(t, ok)
	assert.InDelta(t, 2.0, w, 1e-12)
}

func TestLookupDoesNotCreate(t *testing.T) {
	st := New()
	_, ok := st.Lookup("ham")
	assert.False(t, ok)
	assert.Empty(t, st.Names())
}

func TestAdditiveMutations(t *testing.T) {
	st := New()
	ham := Category{Name: "ham", Weight: 0.5}

	st.AddToTotalWeight(ham.Weight)
	st.AddCategoryWeight(ham)
	for _, word := range []string{"team", "meeting", "team"} {
		st.AddVocabularyWeight(word, ham.Weight)
		st.AddWordOccurrence(word, ham)
		st.AddWordWeight(ham)
	}

	assert.InDelta(t, 0.5, st.TotalWeight(), 1e-12)
	rec, ok := st.Lookup("ham")
	require.True(t, ok)
	assert.InDelta(t, 0.5, rec.DocumentCount(), 1e-12)
	assert.InDelta(t, 1.5, rec.WordCount(), 1e-12)
	assert.Equal(t, 2, rec.DistinctWords())

	team, ok := rec.WordWeight("team")
	require.True(t, ok)
	assert.InDelta(t, 1.0, team, 1e-12)

	vocab, ok := st.VocabularyWeight("team")
	require.True(t, ok)
	assert.InDelta(t, 1.0, vocab, 1e-12)
	assert.Equal(t, 2, st.VocabularySize())

	_, ok = st.VocabularyWeight("absent")
	assert.False(t, ok)
	_, ok = rec.WordWeight("absent")
	assert.False(t, ok)
}

func TestMutationsOnUnknownCategoryCreateIt(t *testing.T) {
	st := New()
	st.AddWordOccurrence("x", Category{Name: "late", Weight: 1})

	rec, ok := st.Lookup("late")
	require.True(t, ok)
	w, _ := rec.WordWeight("x")
	assert.InDelta(t, 1.0, w, 1e-12)
}

func TestNamesAreSorted(t *testing.T) {
	st := New()
	st.EnsureCategory("zeta")
	st.EnsureCategory("alpha")
	st.EnsureCategory("mid")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, st.Names())
}

func TestSummariesReturnsValueSnapshot(t *testing.T) {
	st := New()
	spam := Category{Name: "spam", Weight: 1}
	st.AddCategoryWeight(spam)
	st.AddWordOccurrence("buy", spam)
	st.AddWordWeight(spam)

	snapshot := st.Summaries()
	entry := snapshot["spam"]
	assert.Equal(t, Summary{DocumentCount: 1, WordCount: 1, DistinctWords: 1}, entry)

	entry.WordCount = 999
	snapshot["spam"] = entry
	delete(snapshot, "spam")

	rec, ok := st.Lookup("spam")
	require.True(t, ok, "expected category to remain after snapshot map deletion")
	assert.InDelta(t, 1.0, rec.WordCount(), 1e-12, "expected internal state unchanged by snapshot mutation")
}
