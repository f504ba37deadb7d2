package analyzer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultLanguage is the stop-word list used when none is requested.
const DefaultLanguage = "english"

//go:embed stopwords.json
var stopwordsJSON []byte

// stopwordsByLang is parsed once at startup and never mutated afterwards,
// so concurrent readers need no locking.
var stopwordsByLang map[string]map[string]struct{}

func init() {
	var raw map[string][]string
	if err := json.Unmarshal(stopwordsJSON, &raw); err != nil {
		panic(fmt.Sprintf("analyzer: parse embedded stopwords.json: %v", err))
	}

	stopwordsByLang = make(map[string]map[string]struct{}, len(raw))
	for lang, words := range raw {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		stopwordsByLang[lang] = set
	}
}

// Stopwords returns the stop-word set for lang, or nil if the language is unknown.
// The returned map must not be modified.
func Stopwords(lang string) map[string]struct{} {
	return stopwordsByLang[lang]
}

// Languages lists the languages with an embedded stop-word list.
func Languages() []string {
	langs := make([]string, 0, len(stopwordsByLang))
	for lang := range stopwordsByLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsStopWord reports whether word is an English stop-word.
func IsStopWord(word string) bool {
	_, ok := stopwordsByLang[DefaultLanguage][word]
	return ok
}
