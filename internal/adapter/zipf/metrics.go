package zipf

import (
	"math"

	"lexis/internal/domain"
)

const (
	// MaxRanks bounds the ranks entering the correlation.
	MaxRanks = 100
	// TopWords is the number of leading words reported with the metrics.
	TopWords = 10
	// ZipfianThreshold is the correlation above which a text follows Zipf's law.
	ZipfianThreshold = 0.8
)

// Complexity labels, from most to least Zipf-like.
const (
	ComplexitySimple    = "Simple/Formulaic"
	ComplexityNormal    = "Normal"
	ComplexityComplex   = "Complex/Specialized"
	ComplexityIrregular = "Very Complex/Irregular"
)

// Metrics compares the ranked frequencies with the Zipf expectation f(1)/r
// over the first MaxRanks ranks. An empty list yields zero metrics.
// AvgFrequency always divides by TopWords, so shorter lists average lower.
func Metrics(ranked []domain.RankedWord) domain.ZipfMetrics {
	if len(ranked) == 0 {
		return domain.ZipfMetrics{}
	}

	n := len(ranked)
	if n > MaxRanks {
		n = MaxRanks
	}

	first := float64(ranked[0].Count)
	observed := make([]float64, n)
	expected := make([]float64, n)
	points := make([]domain.RankPoint, n)
	for i := 0; i < n; i++ {
		rank := i + 1
		observed[i] = float64(ranked[i].Count)
		expected[i] = first / float64(rank)
		points[i] = domain.RankPoint{
			Rank:     rank,
			Observed: ranked[i].Count,
			Expected: expected[i],
		}
	}

	corr := Correlation(observed, expected)

	top := Top(ranked, TopWords)
	sum := 0
	for _, wc := range top {
		sum += wc.Count
	}

	return domain.ZipfMetrics{
		TopWords:    top,
		Correlation: corr,
		IsZipfian:   corr > ZipfianThreshold,
		Distribution: domain.Distribution{
			Rank1Frequency:      ranked[0].Count,
			AvgFrequency:        float64(sum) / TopWords,
			TheoreticalVsActual: points,
		},
	}
}

// Correlation is the Pearson coefficient of two equal-length series. Fewer
// than two points or a series without variance gives 0.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if n < 2 || len(b) != n {
		return 0
	}

	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var num, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}

	r := num / math.Sqrt(varA*varB)
	// Rounding can push |r| a hair past 1.
	return math.Max(-1, math.Min(1, r))
}

// Classify maps a Zipf correlation to a complexity label.
func Classify(corr float64) string {
	switch {
	case corr > 0.9:
		return ComplexitySimple
	case corr > 0.8:
		return ComplexityNormal
	case corr > 0.7:
		return ComplexityComplex
	default:
		return ComplexityIrregular
	}
}
