package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{100, TierExcellent},
		{80, TierExcellent},
		{79.9, TierGood},
		{65, TierGood},
		{64.9, TierCaution},
		{50, TierCaution},
		{49.9, TierPoor},
		{0, TierPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyScore(tc.score), "score %v", tc.score)
	}
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, DirectionUp, DirectionOf(13))
	assert.Equal(t, DirectionUp, DirectionOf(0.1))
	assert.Equal(t, DirectionDown, DirectionOf(-7))
	assert.Equal(t, DirectionNeutral, DirectionOf(0))
}
