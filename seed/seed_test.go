package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hickeroar/wordbayes/bayes"
	"github.com/hickeroar/wordbayes/tokenize"
)

const weatherCorpus = `
examples:
  - text: "Sunny and WARM"
    categories:
      - name: outdoor
  - words: [rainy, cold]
    categories:
      - name: indoor
        weight: 2
  - text: "!!!"
    categories:
      - name: indoor
`

func TestLoadAndApply(t *testing.T) {
	corpus, err := Load(strings.NewReader(weatherCorpus))
	require.NoError(t, err)
	require.Len(t, corpus.Examples, 3)

	tok, err := tokenize.New(tokenize.Options{})
	require.NoError(t, err)

	classifier := bayes.NewClassifier(nil)
	trained, err := corpus.Apply(classifier, tok)
	require.NoError(t, err)
	assert.Equal(t, 2, trained, "example without words is skipped")

	st := classifier.Store()
	assert.InDelta(t, 3.0, st.TotalWeight(), 1e-12)
	indoor, ok := st.Lookup("indoor")
	require.True(t, ok)
	assert.InDelta(t, 2.0, indoor.DocumentCount(), 1e-12)
	_, ok = st.VocabularyWeight("sunny")
	assert.True(t, ok, "text examples are tokenized")

	ranking, err := classifier.Classify(tok.Tokenize("warm sun"))
	require.NoError(t, err)
	assert.Equal(t, "outdoor", ranking[0].Category)
}

func TestLoadReportsEveryInvalidExample(t *testing.T) {
	doc := `
examples:
  - text: "hello"
    words: [hello]
    categories: [{name: a}]
  - text: "no labels"
  - text: "bad"
    categories:
      - name: ""
      - name: neg
        weight: -1
`
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
}

func TestLoadEmptyAndMalformed(t *testing.T) {
	corpus, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, corpus.Examples)

	_, err = Load(strings.NewReader("examples: [\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte(weatherCorpus), 0o600))

	corpus, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, corpus.Examples, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
