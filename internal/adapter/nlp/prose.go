package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/port"
)

// ProseName identifies the prose-backed backend.
const ProseName = "prose"

// ProseNLP segments, tokenizes and tags with prose's punkt segmenter,
// Treebank-style tokenizer and averaged perceptron tagger.
type ProseNLP struct {
	stopwords map[string]struct{}
}

var _ port.NLP = (*ProseNLP)(nil)

func NewProseNLP() *ProseNLP {
	return &ProseNLP{stopwords: analyzer.Stopwords(analyzer.DefaultLanguage)}
}

func (p *ProseNLP) Name() string {
	return ProseName
}

func (p *ProseNLP) IsStopWord(word string) bool {
	_, ok := p.stopwords[word]
	return ok
}

func (p *ProseNLP) SplitSentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: segment: %v", port.ErrNLPUnavailable, err)
	}

	sents := doc.Sentences()
	sentences := make([]string, 0, len(sents))
	for _, s := range sents {
		if t := strings.TrimSpace(s.Text); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences, nil
}

func (p *ProseNLP) SplitWords(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenize: %v", port.ErrNLPUnavailable, err)
	}

	toks := doc.Tokens()
	words := make([]string, 0, len(toks))
	for _, tok := range toks {
		words = append(words, tok.Text)
	}
	return words, nil
}

func (p *ProseNLP) Tag(text string) ([]port.TaggedToken, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: tag: %v", port.ErrNLPUnavailable, err)
	}

	toks := doc.Tokens()
	tagged := make([]port.TaggedToken, 0, len(toks))
	for _, tok := range toks {
		tagged = append(tagged, port.TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return tagged, nil
}
