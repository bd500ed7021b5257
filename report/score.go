package report

// Tier is the qualitative band of a 0-100 score. The same banding is used
// for the single-document signing score and for every per-aspect similarity
// in a comparison.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierCaution   Tier = "caution"
	TierPoor      Tier = "poor"
)

// ClassifyScore maps a 0-100 score to its tier. Boundaries belong to the
// higher tier: exactly 80, 65 and 50 classify as excellent, good and
// caution respectively.
func ClassifyScore(percentage float64) Tier {
	switch {
	case percentage >= 80:
		return TierExcellent
	case percentage >= 65:
		return TierGood
	case percentage >= 50:
		return TierCaution
	default:
		return TierPoor
	}
}

// Direction indicates which document a signed score difference favors.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// DirectionOf orients a doc2-minus-doc1 score difference: up favors
// document 2, down favors document 1, neutral at exactly zero.
func DirectionOf(scoreDifference float64) Direction {
	switch {
	case scoreDifference > 0:
		return DirectionUp
	case scoreDifference < 0:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}
