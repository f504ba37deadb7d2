package analyzer

import (
	"strings"
	"unicode"

	"lexis/internal/port"
)

// BasicName identifies the rule-based backend.
const BasicName = "basic"

// abbreviations never end a sentence. Keys are lower-cased without the final dot.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"st": {}, "mt": {}, "vs": {}, "etc": {}, "inc": {}, "ltd": {}, "co": {},
	"corp": {}, "dept": {}, "fig": {}, "no": {}, "vol": {}, "approx": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {}, "aug": {},
	"sep": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
	"e.g": {}, "i.e": {}, "a.m": {}, "p.m": {}, "u.s": {}, "u.k": {}, "ph.d": {},
}

// titles always attach to the following name.
var titles = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"st": {}, "mt": {},
}

// openers are capitalized words that start a new sentence even after an
// abbreviation or an initial. Keys are lower-cased.
var openers = map[string]struct{}{
	"i": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {}, "you": {},
	"the": {}, "a": {}, "an": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"there": {}, "then": {}, "but": {}, "however": {}, "his": {}, "her": {},
	"its": {}, "our": {}, "their": {}, "my": {}, "your": {},
}

// BasicNLP is a dependency-free backend: rule-based sentence and word
// splitting plus a lexicon-and-suffix part-of-speech tagger.
type BasicNLP struct {
	stopwords map[string]struct{}
}

var _ port.NLP = (*BasicNLP)(nil)

// NewBasicNLP creates the rule-based backend with the English stop-word list.
func NewBasicNLP() *BasicNLP {
	return &BasicNLP{stopwords: Stopwords(DefaultLanguage)}
}

func (b *BasicNLP) Name() string {
	return BasicName
}

func (b *BasicNLP) IsStopWord(word string) bool {
	_, ok := b.stopwords[word]
	return ok
}

// SplitSentences splits on terminal punctuation followed by whitespace.
// Known abbreviations and single-letter initials only end a sentence when a
// common opener such as a pronoun or determiner follows. Titles and breaks
// followed by a lower-case word never do.
func (b *BasicNLP) SplitSentences(text string) ([]string, error) {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		end := i + 1
		for end < len(runes) && isTerminalTail(runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}

		if r == '.' && !isSentenceBreak(runes, start, i, end) {
			i = end - 1
			continue
		}

		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = end
		i = end - 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences, nil
}

func isTerminalTail(r rune) bool {
	switch r {
	case '.', '!', '?', '"', '\'', ')', ']', '}', '”', '’':
		return true
	}
	return false
}

// isSentenceBreak decides whether the period at dot closes a sentence.
func isSentenceBreak(runes []rune, start, dot, end int) bool {
	// An ellipsis keeps the sentence going.
	if dot+1 < len(runes) && runes[dot+1] == '.' {
		return false
	}

	wordStart := dot
	for wordStart > start && !unicode.IsSpace(runes[wordStart-1]) {
		wordStart--
	}
	word := strings.TrimLeft(string(runes[wordStart:dot]), "\"'([{")
	lower := strings.ToLower(word)

	next := end
	for next < len(runes) && unicode.IsSpace(runes[next]) {
		next++
	}
	if next < len(runes) && unicode.IsLower(runes[next]) {
		return false
	}

	if _, ok := titles[lower]; ok {
		return false
	}
	_, abbrev := abbreviations[lower]
	wr := []rune(word)
	initial := len(wr) == 1 && unicode.IsUpper(wr[0])
	if abbrev || initial || (strings.Contains(word, ".") && isDottedAcronym(word)) {
		return isOpener(runes, next)
	}
	return true
}

// isOpener reports whether the word at pos is a common sentence opener.
func isOpener(runes []rune, pos int) bool {
	end := pos
	for end < len(runes) && unicode.IsLetter(runes[end]) {
		end++
	}
	if end == pos {
		return false
	}
	_, ok := openers[strings.ToLower(string(runes[pos:end]))]
	return ok
}

// isDottedAcronym matches forms such as "U.S" or "e.g" (final dot excluded).
func isDottedAcronym(word string) bool {
	for _, part := range strings.Split(word, ".") {
		if len([]rune(part)) != 1 || !unicode.IsLetter([]rune(part)[0]) {
			return false
		}
	}
	return true
}

// SplitWords splits text into words and single punctuation tokens. Hyphens
// and apostrophes between letters stay inside the word; contractions are
// separated the Treebank way ("don't" -> "do", "n't"; "cat's" -> "cat", "'s").
func (b *BasicNLP) SplitWords(text string) ([]string, error) {
	runes := []rune(text)
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		words = append(words, splitContraction(current.String())...)
		current.Reset()
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case (r == '\'' || r == '-' || r == '’') && current.Len() > 0 &&
			i+1 < len(runes) && isWordRune(runes[i+1]):
			if r == '’' {
				r = '\''
			}
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			words = append(words, string(r))
		}
	}
	flush()

	return words, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func splitContraction(word string) []string {
	lower := strings.ToLower(word)
	if strings.HasSuffix(lower, "n't") && len(word) > 3 {
		return []string{word[:len(word)-3], word[len(word)-3:]}
	}
	if idx := strings.LastIndex(word, "'"); idx > 0 && !strings.Contains(word[idx:], "-") {
		return []string{word[:idx], word[idx:]}
	}
	return []string{word}
}

// Tag assigns Penn Treebank tags using a closed-class lexicon, the previous
// tag and word suffixes.
func (b *BasicNLP) Tag(text string) ([]port.TaggedToken, error) {
	words, err := b.SplitWords(text)
	if err != nil {
		return nil, err
	}

	tagged := make([]port.TaggedToken, 0, len(words))
	prev := "."
	for _, w := range words {
		tag := tagWord(w, prev)
		tagged = append(tagged, port.TaggedToken{Text: w, Tag: tag})
		prev = tag
	}
	return tagged, nil
}
