package wordctx

import (
	"lexis/internal/adapter/analyzer"
	"lexis/internal/domain"
)

// Usage categories.
const (
	UsageDescriptive = "descriptive"
	UsageAction      = "action"
	UsageRelational  = "relational"
	UsageUnknown     = "Unknown"
)

type indicator struct {
	category string
	words    map[string]struct{}
}

// indicators are checked independently per sentence. Their order is the
// tie-break priority when two categories have the same tally.
var indicators = []indicator{
	{UsageDescriptive, wordSet("is", "are", "was", "were", "being")},
	{UsageAction, wordSet("do", "does", "did", "doing")},
	{UsageRelational, wordSet("in", "on", "at", "with")},
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// InferUsage tallies the usage categories signalled by the context sentences.
// Without contexts, or without any signal, the usage is Unknown with zero confidence.
func InferUsage(n *analyzer.Normalizer, contexts []string) (domain.Usage, error) {
	usage := domain.Usage{
		PrimaryUsage: UsageUnknown,
		ContextCount: len(contexts),
	}
	if len(contexts) == 0 {
		return usage, nil
	}

	tallies := make(map[string]int)
	for _, sentence := range contexts {
		tokens, err := n.LowerWords(sentence)
		if err != nil {
			return domain.Usage{}, err
		}
		for _, ind := range indicators {
			if containsAny(tokens, ind.words) {
				tallies[ind.category]++
			}
		}
	}
	if len(tallies) == 0 {
		return usage, nil
	}

	best := 0
	for _, ind := range indicators {
		if tallies[ind.category] > best {
			best = tallies[ind.category]
			usage.PrimaryUsage = ind.category
		}
	}

	usage.Confidence = min(float64(best)/float64(len(contexts)), 1.0)
	usage.Indicators = tallies
	return usage, nil
}

func containsAny(tokens []string, set map[string]struct{}) bool {
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}
