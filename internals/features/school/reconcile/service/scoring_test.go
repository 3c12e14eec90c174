// file: internals/features/school/reconcile/service/scoring_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		totalMarks float64
		want       float64
	}{
		{"full marks", 100, 100, 100},
		{"partial", 80, 100, 80},
		{"rescaled", 7, 10, 70},
		{"rounded to two decimals", 1, 3, 33.33},
		{"zero score", 0, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScore(tt.score, tt.totalMarks)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

func TestNormalizeScoreUnscored(t *testing.T) {
	assert.Nil(t, NormalizeScore(10, 0))
	assert.Nil(t, NormalizeScore(10, -1))
}
