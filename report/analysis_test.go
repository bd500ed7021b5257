package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalens-backend/models"
)

func sampleAnalysis() *models.DocumentAnalysis {
	return &models.DocumentAnalysis{
		FullText: "SERVICE AGREEMENT\nEither party may terminate this agreement upon thirty days notice\nAll payments are due monthly",
		Clauses: map[string][]models.ClauseMatch{
			"termination": {
				{Text: "terminate", LineNumber: 2},
				{Text: "notice", LineNumber: 2},
			},
			"payment": {
				{Text: "payments", LineNumber: 3},
			},
			"confidentiality": {},
		},
		Entities: map[string][]string{
			"dates":  {"thirty days", "thirty days"},
			"monies": {"$2,000"},
		},
		Summary: "A simple service agreement.",
		Statistics: map[string]float64{
			"word_count":      120,
			"char_count":      840,
			"paragraph_count": 3,
		},
		Recommendation: models.SigningRecommendation{
			Percentage:     72,
			Recommendation: "Sign with caution",
			Findings: models.RecommendationFindings{
				FavorableFactors: []models.RecommendationFactor{
					{Description: "termination clause present", Weight: 5},
				},
				RiskFactors: []models.RecommendationFactor{
					{Description: "no confidentiality clause", Weight: -10},
				},
			},
			MissingClauses: []string{"confidentiality"},
		},
	}
}

func clauseByCategory(t *testing.T, rep *AnalysisReport, category string) ClauseView {
	t.Helper()
	for _, c := range rep.Clauses {
		if c.Category == category {
			return c
		}
	}
	t.Fatalf("category %q not in report", category)
	return ClauseView{}
}

func TestBuildAnalysisReport(t *testing.T) {
	rep := BuildAnalysisReport(sampleAnalysis())

	t.Run("clause categories are sorted", func(t *testing.T) {
		var got []string
		for _, c := range rep.Clauses {
			got = append(got, c.Category)
		}
		assert.Equal(t, []string{"confidentiality", "payment", "termination"}, got)
	})

	t.Run("matches on the same line collapse to one", func(t *testing.T) {
		termination := clauseByCategory(t, rep, "termination")
		assert.True(t, termination.Found)
		assert.Equal(t, 1, termination.MatchCount)
		assert.Equal(t, []int{2}, termination.LineNumbers)

		require.Len(t, termination.Matches, 1)
		m := termination.Matches[0]
		assert.True(t, m.LineFound)
		assert.Equal(t, "Either party may terminate this agreement upon thirty days notice",
			joinSegments(m.Segments))

		var highlighted []string
		for _, s := range m.Segments {
			if s.Match {
				highlighted = append(highlighted, s.Text)
			}
		}
		assert.Equal(t, []string{"terminate"}, highlighted)
	})

	t.Run("empty category renders as not found", func(t *testing.T) {
		confidentiality := clauseByCategory(t, rep, "confidentiality")
		assert.False(t, confidentiality.Found)
		assert.Zero(t, confidentiality.MatchCount)
		assert.Empty(t, confidentiality.Matches)
	})

	t.Run("entity values are deduplicated and labeled", func(t *testing.T) {
		require.Len(t, rep.Entities, 2)
		assert.Equal(t, "dates", rep.Entities[0].Category)
		assert.Equal(t, []string{"thirty days"}, rep.Entities[0].Values)
	})

	t.Run("statistics in stable order", func(t *testing.T) {
		var names []string
		for _, s := range rep.Statistics {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"char_count", "paragraph_count", "word_count"}, names)
		assert.Equal(t, "word count", rep.Statistics[2].Label)
	})

	t.Run("recommendation is classified and weights signed", func(t *testing.T) {
		assert.Equal(t, TierGood, rep.Recommendation.Tier)
		assert.InDelta(t, 72, rep.Recommendation.Percentage, 0.001)

		require.Len(t, rep.Recommendation.FavorableFactors, 1)
		assert.Equal(t, "+5", rep.Recommendation.FavorableFactors[0].WeightLabel)

		require.Len(t, rep.Recommendation.RiskFactors, 1)
		assert.Equal(t, "-10", rep.Recommendation.RiskFactors[0].WeightLabel)

		assert.Equal(t, []string{"confidentiality"}, rep.Recommendation.MissingClauses)
	})
}

func TestBuildAnalysisReportOutOfRangeLine(t *testing.T) {
	analysis := &models.DocumentAnalysis{
		FullText: "only one line here",
		Clauses: map[string][]models.ClauseMatch{
			"liability": {{Text: "indemnify", LineNumber: 40}},
		},
	}

	rep := BuildAnalysisReport(analysis)
	liability := clauseByCategory(t, rep, "liability")
	require.Len(t, liability.Matches, 1)

	m := liability.Matches[0]
	assert.False(t, m.LineFound)
	assert.Equal(t, []Segment{{Text: "indemnify"}}, m.Segments)
}
