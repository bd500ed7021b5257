package report

import (
	"sort"
	"strconv"
	"strings"

	"legalens-backend/models"
)

// MatchView is one representative clause match rendered against its source
// line. When the referenced line falls outside the document, LineFound is
// false and Segments holds the raw matched keyword unhighlighted.
type MatchView struct {
	LineNumber int       `json:"line_number"`
	LineFound  bool      `json:"line_found"`
	Segments   []Segment `json:"segments"`
}

// ClauseView is one clause category row of the analysis report.
type ClauseView struct {
	Category    string      `json:"category"`
	Label       string      `json:"label"`
	Found       bool        `json:"found"`
	MatchCount  int         `json:"match_count"`
	LineNumbers []int       `json:"line_numbers"`
	Matches     []MatchView `json:"matches"`
}

// EntityView is one entity category row with its distinct extracted values.
type EntityView struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Values   []string `json:"values"`
}

// StatisticView is one named document statistic.
type StatisticView struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// FactorView is one favorable or risk factor with its display weight.
// Favorable weights carry an explicit leading "+".
type FactorView struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	WeightLabel string  `json:"weight_label"`
}

// RecommendationView is the classified signing recommendation.
type RecommendationView struct {
	Percentage       float64      `json:"percentage"`
	Tier             Tier         `json:"tier"`
	Text             string       `json:"text"`
	FavorableFactors []FactorView `json:"favorable_factors"`
	RiskFactors      []FactorView `json:"risk_factors"`
	MissingClauses   []string     `json:"missing_clauses"`
}

// AnalysisReport is the display-ready view of a single analyzed document.
type AnalysisReport struct {
	Summary        string             `json:"summary"`
	Clauses        []ClauseView       `json:"clauses"`
	Entities       []EntityView       `json:"entities"`
	Statistics     []StatisticView    `json:"statistics"`
	Recommendation RecommendationView `json:"recommendation"`
}

// BuildAnalysisReport derives the display-ready report from a raw analysis:
// clause matches reconciled to one per line and highlighted against the
// document text, entity values deduplicated, statistics and categories in
// stable sorted order, and the signing score classified into its tier.
func BuildAnalysisReport(analysis *models.DocumentAnalysis) *AnalysisReport {
	rep := &AnalysisReport{
		Summary:        analysis.Summary,
		Clauses:        make([]ClauseView, 0, len(analysis.Clauses)),
		Entities:       make([]EntityView, 0, len(analysis.Entities)),
		Statistics:     make([]StatisticView, 0, len(analysis.Statistics)),
		Recommendation: buildRecommendationView(analysis.Recommendation),
	}

	for _, category := range sortedKeys(analysis.Clauses) {
		rep.Clauses = append(rep.Clauses, buildClauseView(category, analysis.Clauses[category], analysis.FullText))
	}

	for _, category := range sortedKeys(analysis.Entities) {
		rep.Entities = append(rep.Entities, EntityView{
			Category: category,
			Label:    humanizeCategory(category),
			Values:   distinctSorted(analysis.Entities[category]),
		})
	}

	for _, name := range sortedKeys(analysis.Statistics) {
		rep.Statistics = append(rep.Statistics, StatisticView{
			Name:  name,
			Label: humanizeCategory(name),
			Value: analysis.Statistics[name],
		})
	}

	return rep
}

func buildClauseView(category string, matches []models.ClauseMatch, fullText string) ClauseView {
	rec := Reconcile(matches)
	view := ClauseView{
		Category:    category,
		Label:       humanizeCategory(category),
		Found:       len(matches) > 0,
		MatchCount:  len(rec.Representative),
		LineNumbers: rec.LineNumbers,
		Matches:     make([]MatchView, 0, len(rec.Representative)),
	}

	for _, m := range rec.Representative {
		mv := MatchView{LineNumber: m.LineNumber}
		if line, ok := LineAt(fullText, m.LineNumber); ok {
			mv.LineFound = true
			mv.Segments = Highlight(line, m.Text)
		} else {
			mv.Segments = []Segment{{Text: m.Text}}
		}
		view.Matches = append(view.Matches, mv)
	}
	return view
}

func buildRecommendationView(rec models.SigningRecommendation) RecommendationView {
	view := RecommendationView{
		Percentage:       rec.Percentage,
		Tier:             ClassifyScore(rec.Percentage),
		Text:             rec.Recommendation,
		FavorableFactors: make([]FactorView, 0, len(rec.Findings.FavorableFactors)),
		RiskFactors:      make([]FactorView, 0, len(rec.Findings.RiskFactors)),
		MissingClauses:   make([]string, 0, len(rec.MissingClauses)),
	}

	for _, f := range rec.Findings.FavorableFactors {
		view.FavorableFactors = append(view.FavorableFactors, FactorView{
			Description: f.Description,
			Weight:      f.Weight,
			WeightLabel: formatSigned(f.Weight),
		})
	}
	for _, f := range rec.Findings.RiskFactors {
		view.RiskFactors = append(view.RiskFactors, FactorView{
			Description: f.Description,
			Weight:      f.Weight,
			WeightLabel: formatFloat(f.Weight),
		})
	}
	for _, name := range rec.MissingClauses {
		view.MissingClauses = append(view.MissingClauses, humanizeCategory(name))
	}
	return view
}

// humanizeCategory turns a snake_case category name into display text.
func humanizeCategory(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatSigned renders v with an explicit sign for non-negative values.
func formatSigned(v float64) string {
	if v >= 0 {
		return "+" + formatFloat(v)
	}
	return formatFloat(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
