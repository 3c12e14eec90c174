// file: internals/features/school/progress/service/dependency_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupath_backend/internals/features/school/progress/model"
)

type fakeFinder struct {
	prev *model.LessonProgressModel
	err  error
}

func (f *fakeFinder) FindPredecessor(*model.LessonProgressModel) (*model.LessonProgressModel, error) {
	return f.prev, f.err
}

func depService(now time.Time, finder PredecessorFinder) *PeriodDependencyService {
	return &PeriodDependencyService{
		Finder: finder,
		Now:    func() time.Time { return now },
	}
}

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }
func uuidPtr(v uuid.UUID) *uuid.UUID { return &v }

// progressOn builds an incomplete record dated d with an assigned assessment
// and an open window around "now".
func progressOn(d time.Time, seq int) *model.LessonProgressModel {
	return &model.LessonProgressModel{
		LessonProgressID:             uuid.New(),
		LessonProgressStudentID:      uuid.New(),
		LessonProgressSubjectID:      uuid.New(),
		LessonProgressLessonTopicID:  uuid.New(),
		LessonProgressDate:           d,
		LessonProgressPeriodSequence: intPtr(seq),
		LessonProgressTotalPeriods:   intPtr(3),
		LessonProgressAssessmentID:   uuidPtr(uuid.New()),
		LessonProgressWindowStart:    timePtr(d.Add(9 * time.Hour)),
		LessonProgressWindowEnd:      timePtr(d.Add(9*time.Hour + 30*time.Minute)),
		LessonProgressGracePeriodEnd: timePtr(d.Add(9*time.Hour + 45*time.Minute)),
	}
}

var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	friday  = time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC) // previous week
)

func TestCheckAccessAlreadyCompleted(t *testing.T) {
	p := progressOn(monday, 1)
	p.LessonProgressCompleted = true

	v, err := depService(monday.Add(9*time.Hour+10*time.Minute), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.False(t, v.CanAccess)
	assert.Equal(t, StatusAlreadyCompleted, v.StatusCode)
}

func TestCheckAccessBlockedByPreviousPeriod(t *testing.T) {
	prev := progressOn(monday, 1)
	p := progressOn(tuesday, 2)

	v, err := depService(tuesday.Add(9*time.Hour+10*time.Minute), &fakeFinder{prev: prev}).CheckAccess(p)
	require.NoError(t, err)
	assert.False(t, v.CanAccess)
	assert.Equal(t, StatusPreviousBlocked, v.StatusCode)
	require.NotNil(t, v.BlockingProgressID)
	assert.Equal(t, prev.LessonProgressID, *v.BlockingProgressID)
	require.NotNil(t, v.PreviousPeriodCompleted)
	assert.False(t, *v.PreviousPeriodCompleted)
}

func TestCheckAccessAllowedWhenPreviousCompleted(t *testing.T) {
	prev := progressOn(monday, 1)
	prev.LessonProgressCompleted = true
	p := progressOn(tuesday, 2)

	v, err := depService(tuesday.Add(9*time.Hour+10*time.Minute), &fakeFinder{prev: prev}).CheckAccess(p)
	require.NoError(t, err)
	assert.True(t, v.CanAccess)
	assert.Equal(t, StatusAllowed, v.StatusCode)
	assert.Equal(t, WindowOpen, v.WindowStatus)
	require.NotNil(t, v.PreviousPeriodCompleted)
	assert.True(t, *v.PreviousPeriodCompleted)
}

func TestCheckAccessIgnoresPreviousWeekPredecessor(t *testing.T) {
	prev := progressOn(friday, 1) // incomplete, but last week
	p := progressOn(monday, 2)

	v, err := depService(monday.Add(9*time.Hour+10*time.Minute), &fakeFinder{prev: prev}).CheckAccess(p)
	require.NoError(t, err)
	assert.True(t, v.CanAccess)
	assert.Equal(t, StatusAllowed, v.StatusCode)
}

func TestCheckAccessFailsOpenOnMissingPredecessor(t *testing.T) {
	p := progressOn(tuesday, 2)

	v, err := depService(tuesday.Add(9*time.Hour+10*time.Minute), &fakeFinder{prev: nil}).CheckAccess(p)
	require.NoError(t, err)
	assert.True(t, v.CanAccess, "missing predecessor row must not lock the student out")
	assert.Nil(t, v.PreviousPeriodCompleted)
}

func TestCheckAccessAwaitingCustomAssessment(t *testing.T) {
	prev := progressOn(monday, 1)
	prev.LessonProgressCompleted = true
	p := progressOn(tuesday, 2)
	p.LessonProgressAssessmentID = nil
	p.LessonProgressRequiresCustomAssessment = true

	v, err := depService(tuesday.Add(9*time.Hour+10*time.Minute), &fakeFinder{prev: prev}).CheckAccess(p)
	require.NoError(t, err)
	assert.False(t, v.CanAccess)
	assert.Equal(t, StatusAwaitingTeacher, v.StatusCode)
}

func TestCheckAccessNoAssessment(t *testing.T) {
	p := progressOn(monday, 1)
	p.LessonProgressAssessmentID = nil

	v, err := depService(monday.Add(9*time.Hour+10*time.Minute), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.False(t, v.CanAccess)
	assert.Equal(t, StatusNoAssessment, v.StatusCode)
}

func TestCheckAccessWindowVerdicts(t *testing.T) {
	p := progressOn(monday, 1)

	v, err := depService(monday.Add(8*time.Hour), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.Equal(t, StatusWindowNotOpen, v.StatusCode)
	assert.EqualValues(t, 60, v.MinutesUntilOpen)

	v, err = depService(monday.Add(10*time.Hour), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.Equal(t, StatusWindowClosed, v.StatusCode)

	v, err = depService(monday.Add(9*time.Hour+40*time.Minute), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.True(t, v.CanAccess)
	assert.True(t, v.GracePeriodActive)
}

func TestCheckAccessWindowNotConfigured(t *testing.T) {
	p := progressOn(monday, 1)
	p.LessonProgressWindowStart = nil
	p.LessonProgressWindowEnd = nil

	v, err := depService(monday.Add(9*time.Hour), &fakeFinder{}).CheckAccess(p)
	require.NoError(t, err)
	assert.False(t, v.CanAccess)
	assert.Equal(t, StatusWindowUnset, v.StatusCode)
}

func TestSameWeek(t *testing.T) {
	assert.True(t, sameWeek(monday, tuesday))
	assert.False(t, sameWeek(friday, monday))

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.True(t, sameWeek(monday, sunday))
	nextMonday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.False(t, sameWeek(sunday, nextMonday))
}
