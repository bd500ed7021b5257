package models

// ClauseMatch is one occurrence of a recognized clause keyword or phrase.
// LineNumber is a 1-based offset into the document's full text split on
// line breaks; several matches may share a line.
type ClauseMatch struct {
	Text       string `json:"text"`
	LineNumber int    `json:"line_number"`
}

// RecommendationFactor is one weighted finding behind a signing score.
// Weight sign carries meaning: risk factors are negative, favorable
// factors positive.
type RecommendationFactor struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Weight      float64  `json:"weight"`
	Matches     int      `json:"matches,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// RecommendationFindings groups the factors behind a signing recommendation.
type RecommendationFindings struct {
	FavorableFactors []RecommendationFactor `json:"favorable_factors"`
	RiskFactors      []RecommendationFactor `json:"risk_factors"`
}

// SigningRecommendation is the analyzer backend's 0-100 signing score with
// its supporting findings.
type SigningRecommendation struct {
	Percentage     float64                `json:"percentage"`
	Recommendation string                 `json:"recommendation"`
	Findings       RecommendationFindings `json:"findings"`
	MissingClauses []string               `json:"missing_clauses"`
}

// DocumentAnalysis is the analyzer backend's payload for a single document.
// FullText (wire name cleaned_text) is the substrate every ClauseMatch
// line number refers into.
type DocumentAnalysis struct {
	Clauses        map[string][]ClauseMatch `json:"clauses"`
	Entities       map[string][]string      `json:"entities"`
	Summary        string                   `json:"summary"`
	Statistics     map[string]float64       `json:"statistics"`
	FullText       string                   `json:"cleaned_text"`
	Recommendation SigningRecommendation    `json:"signing_recommendation"`
}
