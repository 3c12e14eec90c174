// file: internals/features/school/assessments/service/assessment_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday", monday},
		{"midweek", time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"sunday", sunday},
		{"with time of day", time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := weekBounds(tc.in)
			assert.Equal(t, monday, start)
			assert.Equal(t, sunday, end)
		})
	}
}

func TestWeekBoundsCrossesMonthBoundary(t *testing.T) {
	start, end := weekBounds(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) // Sunday
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)
}
