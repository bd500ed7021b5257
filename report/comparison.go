package report

import (
	"strings"

	"legalens-backend/models"
)

// Normalized clause difference statuses. Anything else coming off the wire
// is rendered as StatusUnknown rather than dropped.
const (
	StatusPresentInBoth = "present_in_both"
	StatusOnlyInDoc1    = "only_in_doc1"
	StatusOnlyInDoc2    = "only_in_doc2"
	StatusAbsentInBoth  = "absent_in_both"
	StatusUnknown       = "unknown"
)

// Severity levels for critical differences, in display precedence order.
// SeverityInfo is the neutral fallback for unrecognized wire values.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
	SeverityInfo   = "INFO"
)

// AspectScore is one named similarity sub-score with its tier.
type AspectScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Tier  Tier    `json:"tier"`
}

// OverallView is the composite similarity header of a comparison report.
type OverallView struct {
	Percentage     float64       `json:"percentage"`
	Tier           Tier          `json:"tier"`
	Interpretation string        `json:"interpretation"`
	Aspects        []AspectScore `json:"aspects"`
}

// VerdictView contrasts both signing scores. ScoreDifference is recomputed
// as doc2 minus doc1 so its sign always agrees with Direction, regardless
// of what the backend sent.
type VerdictView struct {
	Doc1Score          float64   `json:"doc1_score"`
	Doc2Score          float64   `json:"doc2_score"`
	Doc1Tier           Tier      `json:"doc1_tier"`
	Doc2Tier           Tier      `json:"doc2_tier"`
	Doc1RiskCount      int       `json:"doc1_risk_count"`
	Doc2RiskCount      int       `json:"doc2_risk_count"`
	Doc1FavorableCount int       `json:"doc1_favorable_count"`
	Doc2FavorableCount int       `json:"doc2_favorable_count"`
	ScoreDifference    float64   `json:"score_difference"`
	DifferenceLabel    string    `json:"difference_label"`
	Direction          Direction `json:"direction"`
	BetterDocument     string    `json:"better_document"`
	Reason             string    `json:"reason"`
	Recommendation     string    `json:"recommendation"`
}

// CriticalEntryView is one flagged difference inside a severity group.
type CriticalEntryView struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Details string `json:"details"`
	Clause  string `json:"clause,omitempty"`
}

// SeverityGroup holds all critical differences of one severity level.
// Groups appear in precedence order and only when non-empty.
type SeverityGroup struct {
	Severity string              `json:"severity"`
	Entries  []CriticalEntryView `json:"entries"`
}

// StatisticDelta is one statistic contrasted across both documents. The
// delta is doc2 minus doc1 and its label carries an explicit "+" when
// non-negative.
type StatisticDelta struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Doc1       float64 `json:"doc1"`
	Doc2       float64 `json:"doc2"`
	Delta      float64 `json:"delta"`
	DeltaLabel string  `json:"delta_label"`
}

// ClauseSideView is one document's half of a clause comparison row.
type ClauseSideView struct {
	Found       bool     `json:"found"`
	Count       int      `json:"count"`
	Texts       []string `json:"texts"`
	LineNumbers []int    `json:"line_numbers"`
}

// ClauseRow is one clause category contrasted across both documents.
type ClauseRow struct {
	Category   string         `json:"category"`
	Label      string         `json:"label"`
	Status     string         `json:"status"`
	Similarity float64        `json:"similarity"`
	Tier       Tier           `json:"tier"`
	Analysis   string         `json:"analysis"`
	Doc1       ClauseSideView `json:"doc1"`
	Doc2       ClauseSideView `json:"doc2"`
}

// EntityRow is one entity category's overlap across both documents.
type EntityRow struct {
	Category     string   `json:"category"`
	Label        string   `json:"label"`
	Similarity   float64  `json:"similarity"`
	Tier         Tier     `json:"tier"`
	Significance string   `json:"significance"`
	Common       []string `json:"common"`
	OnlyInDoc1   []string `json:"only_in_doc1"`
	OnlyInDoc2   []string `json:"only_in_doc2"`
}

// SummaryView pairs both summaries with their similarity tier.
type SummaryView struct {
	Doc1Summary    string   `json:"doc1_summary"`
	Doc2Summary    string   `json:"doc2_summary"`
	Similarity     float64  `json:"similarity"`
	Tier           Tier     `json:"tier"`
	KeyDifferences []string `json:"key_differences"`
}

// ComparisonReport is the display-ready view of a two-document comparison.
type ComparisonReport struct {
	Overall    OverallView      `json:"overall"`
	Critical   []SeverityGroup  `json:"critical_differences"`
	Verdict    VerdictView      `json:"verdict"`
	Clauses    []ClauseRow      `json:"clauses"`
	Entities   []EntityRow      `json:"entities"`
	Summaries  SummaryView      `json:"summaries"`
	Statistics []StatisticDelta `json:"statistics"`
}

// BuildComparisonReport derives the display-ready comparison from the raw
// backend payload.
func BuildComparisonReport(payload *models.ComparisonPayload) *ComparisonReport {
	return &ComparisonReport{
		Overall:    buildOverallView(payload.OverallSimilarity),
		Critical:   groupCriticalDifferences(payload.CriticalDifferences),
		Verdict:    buildVerdictView(payload.RecommendationComparison),
		Clauses:    buildClauseRows(payload.ClauseDifferences),
		Entities:   buildEntityRows(payload.EntityDifferences),
		Summaries:  buildSummaryView(payload.SummaryComparison),
		Statistics: buildStatisticDeltas(payload.StatisticsComparison),
	}
}

func buildOverallView(overall models.OverallSimilarity) OverallView {
	return OverallView{
		Percentage:     overall.Percentage,
		Tier:           ClassifyScore(overall.Percentage),
		Interpretation: overall.Interpretation,
		Aspects: []AspectScore{
			{Name: "clause similarity", Value: overall.ClauseSimilarity, Tier: ClassifyScore(overall.ClauseSimilarity)},
			{Name: "entity similarity", Value: overall.EntitySimilarity, Tier: ClassifyScore(overall.EntitySimilarity)},
			{Name: "summary similarity", Value: overall.SummarySimilarity, Tier: ClassifyScore(overall.SummarySimilarity)},
		},
	}
}

func buildVerdictView(rc models.RecommendationComparison) VerdictView {
	diff := rc.Doc2.Score - rc.Doc1.Score
	return VerdictView{
		Doc1Score:          rc.Doc1.Score,
		Doc2Score:          rc.Doc2.Score,
		Doc1Tier:           ClassifyScore(rc.Doc1.Score),
		Doc2Tier:           ClassifyScore(rc.Doc2.Score),
		Doc1RiskCount:      len(rc.Doc1.RiskFactors),
		Doc2RiskCount:      len(rc.Doc2.RiskFactors),
		Doc1FavorableCount: len(rc.Doc1.FavorableFactors),
		Doc2FavorableCount: len(rc.Doc2.FavorableFactors),
		ScoreDifference:    diff,
		DifferenceLabel:    formatSigned(diff),
		Direction:          DirectionOf(diff),
		BetterDocument:     rc.WhichIsBetter.BetterDocument,
		Reason:             rc.WhichIsBetter.Reason,
		Recommendation:     rc.WhichIsBetter.Recommendation,
	}
}

func groupCriticalDifferences(diffs []models.CriticalDifference) []SeverityGroup {
	buckets := map[string][]CriticalEntryView{}
	for _, d := range diffs {
		severity := NormalizeSeverity(d.Severity)
		buckets[severity] = append(buckets[severity], CriticalEntryView{
			Type:    d.Type,
			Label:   humanizeCategory(d.Type),
			Details: d.Details,
			Clause:  d.Clause,
		})
	}

	groups := make([]SeverityGroup, 0, len(buckets))
	for _, severity := range []string{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		if entries := buckets[severity]; len(entries) > 0 {
			groups = append(groups, SeverityGroup{Severity: severity, Entries: entries})
		}
	}
	return groups
}

func buildClauseRows(diffs map[string]models.ClauseDifference) []ClauseRow {
	rows := make([]ClauseRow, 0, len(diffs))
	for _, category := range sortedKeys(diffs) {
		d := diffs[category]
		rows = append(rows, ClauseRow{
			Category:   category,
			Label:      humanizeCategory(category),
			Status:     NormalizeStatus(d.Status),
			Similarity: d.Similarity,
			Tier:       ClassifyScore(d.Similarity),
			Analysis:   d.Analysis,
			Doc1:       buildClauseSideView(d.Doc1),
			Doc2:       buildClauseSideView(d.Doc2),
		})
	}
	return rows
}

// buildClauseSideView keeps absent sides explicit: an empty side renders as
// a not-found state with empty slices, never as a missing row.
func buildClauseSideView(side models.ClauseSide) ClauseSideView {
	view := ClauseSideView{
		Found:       side.Count > 0,
		Count:       side.Count,
		Texts:       side.Texts,
		LineNumbers: side.LineNumbers,
	}
	if view.Texts == nil {
		view.Texts = []string{}
	}
	if view.LineNumbers == nil {
		view.LineNumbers = []int{}
	}
	return view
}

func buildEntityRows(diffs map[string]models.EntityDifference) []EntityRow {
	rows := make([]EntityRow, 0, len(diffs))
	for _, category := range sortedKeys(diffs) {
		d := diffs[category]
		rows = append(rows, EntityRow{
			Category:     category,
			Label:        humanizeCategory(category),
			Similarity:   d.Similarity,
			Tier:         ClassifyScore(d.Similarity),
			Significance: d.Significance,
			Common:       emptyIfNil(d.Common),
			OnlyInDoc1:   emptyIfNil(d.OnlyInDoc1),
			OnlyInDoc2:   emptyIfNil(d.OnlyInDoc2),
		})
	}
	return rows
}

func buildSummaryView(sc models.SummaryComparison) SummaryView {
	return SummaryView{
		Doc1Summary:    sc.Doc1Summary,
		Doc2Summary:    sc.Doc2Summary,
		Similarity:     sc.Similarity,
		Tier:           ClassifyScore(sc.Similarity),
		KeyDifferences: emptyIfNil(sc.KeyDifferences),
	}
}

// buildStatisticDeltas walks the union of both documents' statistic names
// so a key present on only one side still yields a row. Deltas are
// recomputed as doc2 minus doc1; the backend's own differences map is
// ignored in favor of values consistent with the displayed operands.
func buildStatisticDeltas(sc models.StatisticsComparison) []StatisticDelta {
	names := map[string]bool{}
	for name := range sc.Doc1 {
		names[name] = true
	}
	for name := range sc.Doc2 {
		names[name] = true
	}

	deltas := make([]StatisticDelta, 0, len(names))
	for _, name := range sortedKeys(names) {
		doc1 := sc.Doc1[name]
		doc2 := sc.Doc2[name]
		delta := doc2 - doc1
		deltas = append(deltas, StatisticDelta{
			Name:       name,
			Label:      humanizeCategory(name),
			Doc1:       doc1,
			Doc2:       doc2,
			Delta:      delta,
			DeltaLabel: formatSigned(delta),
		})
	}
	return deltas
}

// NormalizeStatus maps a wire status token to one of the known statuses,
// falling back to StatusUnknown.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusPresentInBoth:
		return StatusPresentInBoth
	case StatusOnlyInDoc1:
		return StatusOnlyInDoc1
	case StatusOnlyInDoc2:
		return StatusOnlyInDoc2
	case StatusAbsentInBoth:
		return StatusAbsentInBoth
	default:
		return StatusUnknown
	}
}

// NormalizeSeverity maps a wire severity token to HIGH, MEDIUM or LOW,
// falling back to SeverityInfo.
func NormalizeSeverity(severity string) string {
	switch strings.ToUpper(strings.TrimSpace(severity)) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityInfo
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
