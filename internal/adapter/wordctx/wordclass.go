package wordctx

import (
	"fmt"
	"strings"

	"lexis/internal/port"
)

// ClassUnknown is reported for unmapped tags or words the tagger never saw.
const ClassUnknown = "Unknown"

var tagClasses = map[string]string{
	"NN":   "Noun",
	"NNS":  "Noun (Plural)",
	"NNP":  "Proper Noun",
	"NNPS": "Proper Noun (Plural)",
	"VB":   "Verb",
	"VBD":  "Verb (Past)",
	"VBG":  "Verb (Gerund)",
	"VBN":  "Verb (Past Participle)",
	"VBP":  "Verb (Present)",
	"VBZ":  "Verb (3rd Person Singular)",
	"JJ":   "Adjective",
	"JJR":  "Adjective (Comparative)",
	"JJS":  "Adjective (Superlative)",
	"RB":   "Adverb",
	"RBR":  "Adverb (Comparative)",
	"RBS":  "Adverb (Superlative)",
	"PRP":  "Pronoun",
	"PRP$": "Pronoun (Possessive)",
	"IN":   "Preposition",
	"CC":   "Conjunction",
	"DT":   "Determiner",
	"CD":   "Cardinal Number",
}

// ClassForTag maps a Penn Treebank tag to a readable word class.
func ClassForTag(tag string) string {
	if class, ok := tagClasses[tag]; ok {
		return class
	}
	return ClassUnknown
}

// WordClass tags every lower-cased context and maps the tag most often given
// to word. Ties go to the tag seen first.
func WordClass(nlp port.NLP, word string, contexts []string) (string, error) {
	counts := make(map[string]int)
	var order []string

	for _, sentence := range contexts {
		tagged, err := nlp.Tag(strings.ToLower(sentence))
		if err != nil {
			return "", fmt.Errorf("tag context: %w", err)
		}
		for _, tok := range tagged {
			if tok.Text != word {
				continue
			}
			if _, seen := counts[tok.Tag]; !seen {
				order = append(order, tok.Tag)
			}
			counts[tok.Tag]++
		}
	}

	best, bestCount := "", 0
	for _, tag := range order {
		if counts[tag] > bestCount {
			best, bestCount = tag, counts[tag]
		}
	}
	if best == "" {
		return ClassUnknown, nil
	}
	return ClassForTag(best), nil
}

// PartOfSpeech tags word on its own, as a dictionary lookup would.
func PartOfSpeech(nlp port.NLP, word string) (string, error) {
	tagged, err := nlp.Tag(word)
	if err != nil {
		return "", fmt.Errorf("tag word: %w", err)
	}
	if len(tagged) == 0 {
		return "UNKNOWN", nil
	}
	return tagged[0].Tag, nil
}
