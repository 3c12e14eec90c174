// file: internals/features/school/reconcile/dto/reconcile_dto_test.go
package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToScopeEmptyBodyIsGlobal(t *testing.T) {
	scope, err := (&ReconcileRequest{}).ToScope()
	require.NoError(t, err)
	assert.True(t, scope.IsGlobal())
}

func TestToScopeStudent(t *testing.T) {
	id := uuid.New()
	scope, err := (&ReconcileRequest{StudentID: &id}).ToScope()
	require.NoError(t, err)
	require.NotNil(t, scope.StudentID)
	assert.Equal(t, id, *scope.StudentID)
}

func TestToScopeWeekStartSnapsToMonday(t *testing.T) {
	// 2026-03-04 is a Wednesday
	scope, err := (&ReconcileRequest{WeekStart: strPtr("2026-03-04")}).ToScope()
	require.NoError(t, err)
	require.NotNil(t, scope.From)
	require.NotNil(t, scope.To)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), *scope.From)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), *scope.To)
}

func TestToScopeRange(t *testing.T) {
	scope, err := (&ReconcileRequest{From: strPtr("2026-03-02"), To: strPtr("2026-03-08")}).ToScope()
	require.NoError(t, err)
	require.NotNil(t, scope.From)
	require.NotNil(t, scope.To)
	assert.True(t, scope.From.Before(*scope.To))
}

func TestToScopeRejectsUnpairedRange(t *testing.T) {
	_, err := (&ReconcileRequest{From: strPtr("2026-03-02")}).ToScope()
	assert.ErrorIs(t, err, ErrRangeUnpaired)
}

func TestToScopeRejectsInvertedRange(t *testing.T) {
	_, err := (&ReconcileRequest{From: strPtr("2026-03-08"), To: strPtr("2026-03-02")}).ToScope()
	assert.ErrorIs(t, err, ErrRangeInverted)
}

func TestToScopeRejectsMixedShapes(t *testing.T) {
	id := uuid.New()
	_, err := (&ReconcileRequest{StudentID: &id, WeekStart: strPtr("2026-03-02")}).ToScope()
	assert.ErrorIs(t, err, ErrScopeConflict)

	_, err = (&ReconcileRequest{StudentID: &id, From: strPtr("2026-03-02"), To: strPtr("2026-03-08")}).ToScope()
	assert.ErrorIs(t, err, ErrScopeConflict)
}
