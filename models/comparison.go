package models

// ClauseSide is one document's half of a clause difference record.
type ClauseSide struct {
	Count       int      `json:"count"`
	Texts       []string `json:"texts"`
	LineNumbers []int    `json:"line_numbers"`
}

// ClauseDifference describes how a clause category differs between the two
// documents. Status is one of present_in_both, only_in_doc1, only_in_doc2,
// absent_in_both; unrecognized tokens are rendered with a neutral fallback.
type ClauseDifference struct {
	Status     string     `json:"status"`
	Similarity float64    `json:"similarity"`
	Doc1       ClauseSide `json:"doc1"`
	Doc2       ClauseSide `json:"doc2"`
	Analysis   string     `json:"analysis"`
}

// EntityDifference describes per-category entity overlap.
type EntityDifference struct {
	Similarity   float64  `json:"similarity"`
	Common       []string `json:"common"`
	OnlyInDoc1   []string `json:"only_in_doc1"`
	OnlyInDoc2   []string `json:"only_in_doc2"`
	Doc1Count    int      `json:"doc1_count"`
	Doc2Count    int      `json:"doc2_count"`
	Significance string   `json:"significance"`
}

// SummaryComparison pairs both summaries with a similarity score and the
// backend's free-text key differences.
type SummaryComparison struct {
	Doc1Summary    string   `json:"doc1_summary"`
	Doc2Summary    string   `json:"doc2_summary"`
	Similarity     float64  `json:"similarity"`
	KeyDifferences []string `json:"key_differences"`
}

// RecommendationSide is one document's signing recommendation inside a
// comparison.
type RecommendationSide struct {
	Score            float64                `json:"score"`
	Recommendation   string                 `json:"recommendation"`
	RiskFactors      []RecommendationFactor `json:"risk_factors"`
	FavorableFactors []RecommendationFactor `json:"favorable_factors"`
}

// BetterDocument is the backend's verdict on which document is more
// favorable. Its derivation is upstream; this layer consumes it opaquely.
type BetterDocument struct {
	BetterDocument string `json:"better_document"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

// RecommendationComparison pairs both signing scores with the backend's
// verdict. ScoreDifference is signed: positive means document 2 scores
// higher.
type RecommendationComparison struct {
	Doc1            RecommendationSide `json:"doc1"`
	Doc2            RecommendationSide `json:"doc2"`
	ScoreDifference float64            `json:"score_difference"`
	WhichIsBetter   BetterDocument     `json:"which_is_better"`
}

// StatisticsComparison carries both documents' numeric statistics and the
// backend's precomputed deltas.
type StatisticsComparison struct {
	Doc1        map[string]float64 `json:"doc1"`
	Doc2        map[string]float64 `json:"doc2"`
	Differences map[string]float64 `json:"differences"`
}

// CriticalDifference is one backend-flagged difference tagged with a
// HIGH/MEDIUM/LOW severity. Clause is set only for clause-level findings.
type CriticalDifference struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`
	Clause   string `json:"clause,omitempty"`
}

// OverallSimilarity is the backend's composite similarity with its three
// named sub-scores.
type OverallSimilarity struct {
	Percentage        float64 `json:"percentage"`
	Interpretation    string  `json:"interpretation"`
	ClauseSimilarity  float64 `json:"clause_similarity"`
	EntitySimilarity  float64 `json:"entity_similarity"`
	SummarySimilarity float64 `json:"summary_similarity"`
}

// ComparisonPayload is the analyzer backend's raw two-document comparison.
type ComparisonPayload struct {
	Doc1Path                 string                      `json:"doc1_path"`
	Doc2Path                 string                      `json:"doc2_path"`
	ClauseDifferences        map[string]ClauseDifference `json:"clause_differences"`
	EntityDifferences        map[string]EntityDifference `json:"entity_differences"`
	SummaryComparison        SummaryComparison           `json:"summary_comparison"`
	RecommendationComparison RecommendationComparison    `json:"recommendation_comparison"`
	StatisticsComparison     StatisticsComparison        `json:"statistics_comparison"`
	CriticalDifferences      []CriticalDifference        `json:"critical_differences"`
	OverallSimilarity        OverallSimilarity           `json:"overall_similarity"`
}
