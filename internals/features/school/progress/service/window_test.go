// file: internals/features/school/progress/service/window_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schedModel "edupath_backend/internals/features/school/schedules/model"
	"edupath_backend/internals/helpers/dbtime"
)

func mustTod(t *testing.T, s string) dbtime.Tod {
	t.Helper()
	v, err := dbtime.Parse(s)
	require.NoError(t, err)
	return v
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return v
}

func testWindow(t *testing.T) AssessmentWindow {
	t.Helper()
	start := ts(t, "2026-03-02 09:00:00")
	end := ts(t, "2026-03-02 09:30:00")
	grace := ts(t, "2026-03-02 09:45:00")
	return AssessmentWindow{Start: &start, End: &end, GraceEnd: &grace}
}

func TestDeriveWindow(t *testing.T) {
	sched := &schedModel.DailyScheduleModel{
		DailyScheduleDate:      ts(t, "2026-03-02 00:00:00"),
		DailyScheduleStartTime: mustTod(t, "09:00:00"),
		DailyScheduleEndTime:   mustTod(t, "09:30:00"),
	}

	w := DeriveWindow(sched)
	require.NotNil(t, w.Start)
	require.NotNil(t, w.End)
	require.NotNil(t, w.GraceEnd)
	assert.Equal(t, ts(t, "2026-03-02 09:00:00"), *w.Start)
	assert.Equal(t, ts(t, "2026-03-02 09:30:00"), *w.End)
	assert.Equal(t, ts(t, "2026-03-02 09:45:00"), *w.GraceEnd)
}

func TestAccessibleDuringGracePeriod(t *testing.T) {
	w := testWindow(t)
	now := ts(t, "2026-03-02 09:40:00")

	assert.True(t, w.Accessible(now))
	assert.Equal(t, WindowGracePeriod, w.Status(now))
	assert.EqualValues(t, 5, w.MinutesRemaining(now))
}

func TestNotAccessibleAfterGracePeriod(t *testing.T) {
	w := testWindow(t)
	now := ts(t, "2026-03-02 09:46:00")

	assert.False(t, w.Accessible(now))
	assert.Equal(t, WindowExpired, w.Status(now))
	assert.EqualValues(t, 0, w.MinutesRemaining(now))
}

func TestAccessibleAtBoundaries(t *testing.T) {
	w := testWindow(t)

	assert.True(t, w.Accessible(ts(t, "2026-03-02 09:00:00")), "start is inclusive")
	assert.True(t, w.Accessible(ts(t, "2026-03-02 09:45:00")), "grace end is inclusive")
	assert.False(t, w.Accessible(ts(t, "2026-03-02 08:59:59")))
}

func TestNotYetOpen(t *testing.T) {
	w := testWindow(t)
	now := ts(t, "2026-03-02 08:30:00")

	assert.False(t, w.Accessible(now))
	assert.Equal(t, WindowNotYetOpen, w.Status(now))
	assert.EqualValues(t, 30, w.MinutesUntilOpen(now))
}

func TestUnconfiguredWindowNeverAccessible(t *testing.T) {
	now := ts(t, "2026-03-02 09:10:00")

	var empty AssessmentWindow
	assert.False(t, empty.Accessible(now))
	assert.Equal(t, WindowUnset, empty.Status(now))

	start := ts(t, "2026-03-02 09:00:00")
	halfSet := AssessmentWindow{Start: &start}
	assert.False(t, halfSet.Accessible(now))
	assert.Equal(t, WindowUnset, halfSet.Status(now))
}

func TestEffectiveEndFallsBackToEnd(t *testing.T) {
	start := ts(t, "2026-03-02 09:00:00")
	end := ts(t, "2026-03-02 09:30:00")
	w := AssessmentWindow{Start: &start, End: &end}

	require.NotNil(t, w.EffectiveEnd())
	assert.Equal(t, end, *w.EffectiveEnd())
	assert.True(t, w.Accessible(ts(t, "2026-03-02 09:30:00")))
	assert.False(t, w.Accessible(ts(t, "2026-03-02 09:31:00")))
}

func TestGraceAddOnDefault(t *testing.T) {
	assert.Equal(t, 15*time.Minute, GraceAddOn())
}
