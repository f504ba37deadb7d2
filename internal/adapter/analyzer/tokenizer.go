package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"lexis/internal/port"
)

// cleanRegex drops everything except letters, digits, underscore, whitespace,
// hyphens and apostrophes before word splitting.
var cleanRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s'-]`)

// Normalizer turns raw text into sentences and cleaned tokens using an NLP backend.
type Normalizer struct {
	nlp port.NLP
}

// NewNormalizer creates a Normalizer over nlp.
func NewNormalizer(nlp port.NLP) *Normalizer {
	return &Normalizer{nlp: nlp}
}

// NLP returns the backend the normalizer splits and tags with.
func (n *Normalizer) NLP() port.NLP {
	return n.nlp
}

// Sentences splits text into sentences. Empty text yields no sentences.
func (n *Normalizer) Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	sentences, err := n.nlp.SplitSentences(text)
	if err != nil {
		return nil, fmt.Errorf("split sentences: %w", err)
	}
	return sentences, nil
}

// CleanTokens returns the tokens counted for frequency analysis: lower-cased,
// stripped of punctuation, without stop-words, single characters or tokens
// holding anything but letters.
func (n *Normalizer) CleanTokens(text string) ([]string, error) {
	cleaned := cleanRegex.ReplaceAllString(strings.ToLower(text), "")
	if strings.TrimSpace(cleaned) == "" {
		return []string{}, nil
	}

	words, err := n.nlp.SplitWords(cleaned)
	if err != nil {
		return nil, fmt.Errorf("split words: %w", err)
	}

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) <= 1 {
			continue
		}
		if n.nlp.IsStopWord(word) {
			continue
		}
		if !IsAlpha(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens, nil
}

// LowerWords splits a lower-cased sentence into every word and punctuation token.
func (n *Normalizer) LowerWords(sentence string) ([]string, error) {
	words, err := n.nlp.SplitWords(strings.ToLower(sentence))
	if err != nil {
		return nil, fmt.Errorf("split words: %w", err)
	}
	return words, nil
}

// SignificantTokens returns the tokens of a sentence that carry context:
// alphabetic, longer than two characters and not a stop-word.
func (n *Normalizer) SignificantTokens(sentence string) ([]string, error) {
	words, err := n.LowerWords(sentence)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if !n.IsSignificant(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens, nil
}

// IsSignificant applies the per-sentence context filter to a lower-cased word.
func (n *Normalizer) IsSignificant(word string) bool {
	return IsAlpha(word) && len([]rune(word)) > 2 && !n.nlp.IsStopWord(word)
}

// IsStopWord delegates to the backend's stop-word set.
func (n *Normalizer) IsStopWord(word string) bool {
	return n.nlp.IsStopWord(word)
}

// IsAlpha reports whether word is non-empty and made only of letters.
func IsAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
