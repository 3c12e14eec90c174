// file: internals/features/school/reconcile/service/scope_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeCondGlobal(t *testing.T) {
	conds, args := GlobalScope().cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")
	assert.Equal(t, "1=1", conds)
	assert.Empty(t, args)
	assert.True(t, GlobalScope().IsGlobal())
}

func TestScopeCondStudent(t *testing.T) {
	id := uuid.New()
	sc := StudentScope(id)

	conds, args := sc.cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")
	assert.Equal(t, "1=1 AND lp.lesson_progress_student_id = ?", conds)
	require.Len(t, args, 1)
	assert.Equal(t, id, args[0])
	assert.False(t, sc.IsGlobal())
}

func TestScopeCondRange(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	sc := RangeScope(from, to)

	conds, args := sc.cond("ds.daily_schedule_student_id", "ds.daily_schedule_date")
	assert.Equal(t, "1=1 AND ds.daily_schedule_date >= ? AND ds.daily_schedule_date <= ?", conds)
	require.Len(t, args, 2)
	assert.Equal(t, from, args[0])
	assert.Equal(t, to, args[1])
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", GlobalScope().String())

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "range=2026-03-02..2026-03-08", RangeScope(from, to).String())
}
