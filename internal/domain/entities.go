package domain

import (
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")

type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

type RankedWord struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// RankPoint compares the observed frequency at a rank with the Zipf expectation.
type RankPoint struct {
	Rank     int     `json:"rank" yaml:"rank"`
	Observed int     `json:"observed" yaml:"observed"`
	Expected float64 `json:"expected" yaml:"expected"`
}

type Distribution struct {
	Rank1Frequency      int         `json:"rank_1_frequency" yaml:"rank_1_frequency"`
	AvgFrequency        float64     `json:"avg_frequency" yaml:"avg_frequency"`
	TheoreticalVsActual []RankPoint `json:"theoretical_vs_actual" yaml:"theoretical_vs_actual"`
}

// ZipfMetrics is the zero value when the text had no qualifying tokens.
type ZipfMetrics struct {
	TopWords     []WordCount  `json:"top_10_words" yaml:"top_10_words"`
	Correlation  float64      `json:"zipf_correlation" yaml:"zipf_correlation"`
	IsZipfian    bool         `json:"is_zipfian" yaml:"is_zipfian"`
	Distribution Distribution `json:"distribution_analysis" yaml:"distribution_analysis"`
}

type FrequencyAnalysis struct {
	TotalWords     int          `json:"total_words" yaml:"total_words"`
	UniqueWords    int          `json:"unique_words" yaml:"unique_words"`
	TopFrequencies []WordCount  `json:"word_frequencies" yaml:"word_frequencies"`
	Zipf           ZipfMetrics  `json:"zipf_metrics" yaml:"zipf_metrics"`
	RankedWords    []RankedWord `json:"ranked_words" yaml:"ranked_words"`
}

// WordRank is the position of a single word in a ranked list.
type WordRank struct {
	Word       string  `json:"word" yaml:"word"`
	Found      bool    `json:"found" yaml:"found"`
	Rank       int     `json:"rank,omitempty" yaml:"rank,omitempty"`
	Percentile float64 `json:"percentile,omitempty" yaml:"percentile,omitempty"`
}

type Usage struct {
	PrimaryUsage string         `json:"primary_usage" yaml:"primary_usage"`
	Confidence   float64        `json:"confidence" yaml:"confidence"`
	ContextCount int            `json:"context_count" yaml:"context_count"`
	Indicators   map[string]int `json:"semantic_indicators,omitempty" yaml:"semantic_indicators,omitempty"`
}

type WordContextReport struct {
	Word             string      `json:"word" yaml:"word"`
	Found            bool        `json:"found" yaml:"found"`
	Message          string      `json:"message,omitempty" yaml:"message,omitempty"`
	Frequency        int         `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	PartOfSpeech     string      `json:"part_of_speech,omitempty" yaml:"part_of_speech,omitempty"`
	Contexts         []string    `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	SurroundingWords []WordCount `json:"surrounding_words,omitempty" yaml:"surrounding_words,omitempty"`
	InferredMeaning  Usage       `json:"inferred_meaning" yaml:"inferred_meaning"`
	WordClass        string      `json:"word_class,omitempty" yaml:"word_class,omitempty"`
}

type WordSummary struct {
	Word            string `json:"word" yaml:"word"`
	Frequency       int    `json:"frequency" yaml:"frequency"`
	ContextsCount   int    `json:"contexts_count" yaml:"contexts_count"`
	InferredMeaning Usage  `json:"inferred_meaning" yaml:"inferred_meaning"`
}

type TextSummary struct {
	TotalSentences    int     `json:"total_sentences" yaml:"total_sentences"`
	AvgSentenceLength float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`
}

type CorpusContext struct {
	TotalUniqueWords int           `json:"total_unique_words" yaml:"total_unique_words"`
	SignificantWords []WordSummary `json:"significant_words" yaml:"significant_words"`
	TextSummary      TextSummary   `json:"text_summary" yaml:"text_summary"`
}

// ContextAnalysis holds either Word (target mode) or Corpus (no target).
type ContextAnalysis struct {
	Target string             `json:"target,omitempty" yaml:"target,omitempty"`
	Word   *WordContextReport `json:"word,omitempty" yaml:"word,omitempty"`
	Corpus *CorpusContext     `json:"corpus,omitempty" yaml:"corpus,omitempty"`
}

type WordFamily struct {
	Stem  string   `json:"stem" yaml:"stem"`
	Words []string `json:"words" yaml:"words"`
	Count int      `json:"count" yaml:"count"`
}

type Insights struct {
	TextComplexity        string       `json:"text_complexity" yaml:"text_complexity"`
	VocabularyRichness    float64      `json:"vocabulary_richness" yaml:"vocabulary_richness"`
	DominantTopics        []string     `json:"dominant_topics" yaml:"dominant_topics"`
	RecommendedFocusWords []string     `json:"recommended_focus_words" yaml:"recommended_focus_words"`
	WordFamilies          []WordFamily `json:"word_families,omitempty" yaml:"word_families,omitempty"`
}

type AnalysisReport struct {
	Frequency FrequencyAnalysis `json:"zipf_analysis" yaml:"zipf_analysis"`
	Context   ContextAnalysis   `json:"contextual_analysis" yaml:"contextual_analysis"`
	Insights  Insights          `json:"combined_insights" yaml:"combined_insights"`
}

// Document is a text kept in the reading library.
type Document struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Path      string    `json:"path,omitempty" yaml:"path,omitempty"`
	Digest    string    `json:"digest" yaml:"digest"`
	Words     int       `json:"words" yaml:"words"`
	AddedAt   time.Time `json:"added_at" yaml:"added_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

type SavedReport struct {
	DocID     string         `json:"doc_id" yaml:"doc_id"`
	Target    string         `json:"target,omitempty" yaml:"target,omitempty"`
	Backend   string         `json:"backend" yaml:"backend"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	Report    AnalysisReport `json:"report" yaml:"report"`
}

type SearchHit struct {
	Document Document `json:"document" yaml:"document"`
	Score    float64  `json:"score" yaml:"score"`
}
