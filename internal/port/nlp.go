package port

import "errors"

// ErrNLPUnavailable marks a failure of the sentence splitter, word splitter or tagger.
var ErrNLPUnavailable = errors.New("nlp backend unavailable")

// TaggedToken is a word occurrence with its Penn Treebank part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// NLP is the language capability the analyzer depends on.
// Implementations must be safe for concurrent use.
type NLP interface {
	// SplitSentences returns the sentences of text in order, unmodified.
	SplitSentences(text string) ([]string, error)

	// SplitWords returns word and punctuation tokens in order.
	SplitWords(text string) ([]string, error)

	// Tag assigns a part-of-speech tag to every token of text.
	Tag(text string) ([]TaggedToken, error)

	// IsStopWord reports whether a lower-cased word is a stop-word.
	IsStopWord(word string) bool

	// Name identifies the backend.
	Name() string
}
