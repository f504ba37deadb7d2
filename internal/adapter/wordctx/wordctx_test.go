package wordctx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/domain"
	"lexis/internal/port"
)

const bankText = "The bank is by the river. The bank approved my loan."

func newNormalizer() *analyzer.Normalizer {
	return analyzer.NewNormalizer(analyzer.NewBasicNLP())
}

// taggerDown behaves like the basic backend except that tagging fails.
type taggerDown struct {
	*analyzer.BasicNLP
}

func (taggerDown) Tag(string) ([]port.TaggedToken, error) {
	return nil, port.ErrNLPUnavailable
}

func buildIndex(t *testing.T, n *analyzer.Normalizer, text string) *Index {
	t.Helper()
	sentences, err := n.Sentences(text)
	require.NoError(t, err)
	idx, err := BuildIndex(n, sentences)
	require.NoError(t, err)
	return idx
}

func TestBuildIndex(t *testing.T) {
	n := newNormalizer()
	idx := buildIndex(t, n, bankText)

	assert.Equal(t, []string{"The bank is by the river.", "The bank approved my loan."}, idx.Contexts("bank"))
	assert.Equal(t, []string{"The bank is by the river."}, idx.Contexts("river"))
	assert.Nil(t, idx.Contexts("the"))
	assert.Equal(t, 4, idx.Len())
}

func TestBuildIndex_OncePerSentence(t *testing.T) {
	n := newNormalizer()
	idx := buildIndex(t, n, "The cat saw another cat. A cat slept.")

	assert.Len(t, idx.Contexts("cat"), 2)
	assert.Equal(t, 3, idx.Frequencies().Get("cat"))
}

func TestNeighbors(t *testing.T) {
	n := newNormalizer()
	idx := buildIndex(t, n, bankText)

	neighbors, err := Neighbors(n, "bank", idx.Contexts("bank"))
	require.NoError(t, err)
	assert.Equal(t, []domain.WordCount{{Word: "approved", Count: 1}, {Word: "loan", Count: 1}}, neighbors)
}

func TestNeighbors_Window(t *testing.T) {
	n := newNormalizer()

	neighbors, err := Neighbors(n, "target", []string{"one two three four target five six seven eight"})
	require.NoError(t, err)

	words := make([]string, len(neighbors))
	for i, wc := range neighbors {
		words[i] = wc.Word
	}
	assert.Equal(t, []string{"two", "three", "four", "five", "six", "seven"}, words)
}

func TestNeighbors_RepeatedTarget(t *testing.T) {
	n := newNormalizer()

	neighbors, err := Neighbors(n, "cat", []string{"The cat saw another cat."})
	require.NoError(t, err)
	assert.Equal(t, []domain.WordCount{
		{Word: "saw", Count: 2},
		{Word: "another", Count: 2},
		{Word: "cat", Count: 2},
	}, neighbors)
}

func TestInferUsage(t *testing.T) {
	n := newNormalizer()

	tests := []struct {
		name       string
		contexts   []string
		usage      string
		confidence float64
	}{
		{"no contexts", nil, UsageUnknown, 0},
		{"no signal", []string{"Birds sing."}, UsageUnknown, 0},
		{"descriptive", []string{"The bank is by the river.", "The bank approved my loan."}, UsageDescriptive, 0.5},
		{"relational wins", []string{"It was done with care.", "They did it at noon."}, UsageRelational, 1.0},
		{"tie goes to priority", []string{"He did it.", "It is red."}, UsageDescriptive, 0.5},
		{"multiple per sentence", []string{"They were doing it in town."}, UsageDescriptive, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage, err := InferUsage(n, tt.contexts)
			require.NoError(t, err)
			assert.Equal(t, tt.usage, usage.PrimaryUsage)
			assert.InDelta(t, tt.confidence, usage.Confidence, 1e-9)
			assert.Equal(t, len(tt.contexts), usage.ContextCount)
			assert.GreaterOrEqual(t, usage.Confidence, 0.0)
			assert.LessOrEqual(t, usage.Confidence, 1.0)
		})
	}
}

func TestInferUsage_IndependentCategories(t *testing.T) {
	usage, err := InferUsage(newNormalizer(), []string{"They were doing it in town."})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{UsageDescriptive: 1, UsageAction: 1, UsageRelational: 1}, usage.Indicators)
}

func TestWordClass(t *testing.T) {
	b := analyzer.NewBasicNLP()

	class, err := WordClass(b, "bank", []string{"The bank is by the river.", "The bank approved my loan."})
	require.NoError(t, err)
	assert.Equal(t, "Noun", class)

	class, err = WordClass(b, "zebra", []string{"The bank is by the river."})
	require.NoError(t, err)
	assert.Equal(t, ClassUnknown, class)
}

func TestClassForTag(t *testing.T) {
	assert.Equal(t, "Verb (Past)", ClassForTag("VBD"))
	assert.Equal(t, "Pronoun (Possessive)", ClassForTag("PRP$"))
	assert.Equal(t, ClassUnknown, ClassForTag("UH"))
}

func TestDescribe(t *testing.T) {
	n := newNormalizer()
	idx := buildIndex(t, n, bankText)

	report, err := Describe(n, "bank", idx.Contexts("bank"))
	require.NoError(t, err)

	assert.True(t, report.Found)
	assert.Equal(t, 2, report.Frequency)
	assert.Equal(t, "NN", report.PartOfSpeech)
	assert.Len(t, report.Contexts, 2)
	assert.Equal(t, UsageDescriptive, report.InferredMeaning.PrimaryUsage)
	assert.Equal(t, 1, report.InferredMeaning.Indicators[UsageDescriptive])
	assert.Equal(t, "Noun", report.WordClass)
}

func TestDescribe_NotFound(t *testing.T) {
	report, err := Describe(newNormalizer(), "zebra", nil)
	require.NoError(t, err)

	assert.False(t, report.Found)
	assert.Equal(t, UsageUnknown, report.InferredMeaning.PrimaryUsage)
	assert.Equal(t, 0.0, report.InferredMeaning.Confidence)
	assert.Contains(t, report.Message, "zebra")
}

func TestDescribe_CapsExamples(t *testing.T) {
	contexts := make([]string, 8)
	for i := range contexts {
		contexts[i] = "The owl is awake."
	}

	report, err := Describe(newNormalizer(), "owl", contexts)
	require.NoError(t, err)
	assert.Len(t, report.Contexts, MaxExamples)
	assert.Equal(t, 8, report.Frequency)
}

func TestDescribe_TaggerFailure(t *testing.T) {
	n := analyzer.NewNormalizer(taggerDown{analyzer.NewBasicNLP()})

	_, err := Describe(n, "bank", []string{"The bank is by the river."})
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrNLPUnavailable))
}
