package analyzer

import (
	"strings"
	"unicode"
)

var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT", "these": "DT",
	"those": "DT", "every": "DT", "each": "DT", "some": "DT", "any": "DT",
	"no": "DT", "another": "DT", "all": "DT", "both": "DT",

	"in": "IN", "on": "IN", "at": "IN", "with": "IN", "by": "IN", "for": "IN",
	"from": "IN", "of": "IN", "about": "IN", "into": "IN", "through": "IN",
	"over": "IN", "under": "IN", "after": "IN", "before": "IN", "between": "IN",
	"against": "IN", "during": "IN", "without": "IN", "within": "IN",
	"upon": "IN", "near": "IN", "since": "IN", "until": "IN", "among": "IN",
	"across": "IN", "behind": "IN", "beyond": "IN", "toward": "IN",
	"towards": "IN", "like": "IN", "than": "IN", "because": "IN", "if": "IN",
	"while": "IN", "although": "IN", "though": "IN", "whether": "IN",

	"to": "TO",

	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC", "so": "CC",

	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP",
	"we": "PRP", "they": "PRP", "me": "PRP", "him": "PRP", "her": "PRP",
	"us": "PRP", "them": "PRP", "myself": "PRP", "itself": "PRP",

	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$", "our": "PRP$",
	"their": "PRP$",

	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "shall": "MD",
	"should": "MD", "may": "MD", "might": "MD", "must": "MD",

	"is": "VBZ", "has": "VBZ", "does": "VBZ",
	"are": "VBP", "am": "VBP", "have": "VBP", "do": "VBP",
	"was": "VBD", "were": "VBD", "had": "VBD", "did": "VBD",
	"been": "VBN", "being": "VBG", "having": "VBG", "doing": "VBG", "be": "VB",

	"which": "WDT", "who": "WP", "whom": "WP", "what": "WP",
	"when": "WRB", "where": "WRB", "why": "WRB", "how": "WRB",

	"not": "RB", "n't": "RB", "very": "RB", "also": "RB", "too": "RB",
	"just": "RB", "only": "RB", "never": "RB", "always": "RB", "often": "RB",
	"here": "RB", "there": "RB", "now": "RB", "then": "RB", "again": "RB",
	"more": "RBR", "less": "RBR", "most": "RBS",

	"'s": "POS",
}

var nounSuffixes = []string{"tion", "sion", "ment", "ness", "ity", "ism", "ship", "ance", "ence", "hood"}

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "ical", "less", "ish", "ary", "ic", "al"}

// tagWord guesses a tag for w given the tag of the preceding token.
func tagWord(w, prev string) string {
	runes := []rune(w)
	if len(runes) == 0 {
		return "SYM"
	}

	if !isWordRune(runes[0]) {
		switch w {
		case ".", "!", "?":
			return "."
		case ",":
			return ","
		case ":", ";":
			return ":"
		case "(", "[", "{":
			return "("
		case ")", "]", "}":
			return ")"
		}
		return "SYM"
	}

	if isNumeric(w) {
		return "CD"
	}

	lower := strings.ToLower(w)
	if tag, ok := closedClass[lower]; ok {
		return tag
	}

	if unicode.IsUpper(runes[0]) && prev != "." {
		return "NNP"
	}

	if prev == "TO" || prev == "MD" {
		return "VB"
	}

	switch {
	case strings.HasSuffix(lower, "ly") && len(runes) > 4:
		return "RB"
	case strings.HasSuffix(lower, "ing") && len(runes) > 4:
		return "VBG"
	case strings.HasSuffix(lower, "ed") && len(runes) > 3:
		if strings.HasPrefix(prev, "VB") {
			return "VBN"
		}
		return "VBD"
	case strings.HasSuffix(lower, "est") && len(runes) > 5:
		return "JJS"
	}

	for _, suf := range nounSuffixes {
		if strings.HasSuffix(lower, suf) && len(runes) > len(suf)+2 {
			if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ness") {
				return "NNS"
			}
			return "NN"
		}
	}
	for _, suf := range adjectiveSuffixes {
		if strings.HasSuffix(lower, suf) && len(runes) > len(suf)+2 {
			return "JJ"
		}
	}

	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") &&
		!strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is") && len(runes) > 3 {
		switch prev {
		case "NN", "NNP", "PRP", "NNS":
			return "VBZ"
		}
		return "NNS"
	}

	return "NN"
}

func isNumeric(w string) bool {
	digits := 0
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}
