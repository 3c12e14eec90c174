// file: internals/features/school/reconcile/service/pipeline_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePass(name string, mutations int64, invoked *bool) pass {
	return pass{
		name: name,
		run: func(ctx context.Context) (int64, error) {
			if invoked != nil {
				*invoked = true
			}
			return mutations, nil
		},
	}
}

func failingPass(name string, err error) pass {
	return pass{
		name: name,
		run: func(ctx context.Context) (int64, error) {
			return 0, err
		},
	}
}

func okValidate(counts ValidationCounts) validateFunc {
	return func(ctx context.Context, scope Scope) (ValidationCounts, error) {
		return counts, nil
	}
}

func TestRunAggregatesPassResults(t *testing.T) {
	svc := &ReconcileService{}
	counts := ValidationCounts{AllGood: true}

	report, err := svc.run(context.Background(), GlobalScope(), []pass{
		fakePass("first", 2, nil),
		fakePass("second", 0, nil),
		fakePass("third", 5, nil),
	}, okValidate(counts))

	require.NoError(t, err)
	require.Len(t, report.Passes, 3)
	assert.Equal(t, "first", report.Passes[0].Name)
	assert.Equal(t, "second", report.Passes[1].Name)
	assert.Equal(t, "third", report.Passes[2].Name)
	assert.Equal(t, int64(2), report.Passes[0].Mutations)
	assert.Equal(t, int64(0), report.Passes[1].Mutations)
	assert.Equal(t, int64(5), report.Passes[2].Mutations)
	assert.Equal(t, int64(7), report.TotalMutations)
	assert.Equal(t, counts, report.Validation)
	assert.Empty(t, report.FailedAtPass)
	assert.Equal(t, "global", report.Scope)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestRunStopsAtFailingPass(t *testing.T) {
	svc := &ReconcileService{}
	boom := errors.New("deadlock detected")
	laterInvoked := false
	validated := false

	report, err := svc.run(context.Background(), GlobalScope(), []pass{
		fakePass("first", 3, nil),
		failingPass("second", boom),
		fakePass("third", 9, &laterInvoked),
	}, func(ctx context.Context, scope Scope) (ValidationCounts, error) {
		validated = true
		return ValidationCounts{}, nil
	})

	require.Error(t, err)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "second", stepErr.Pass)
	assert.ErrorIs(t, err, boom)

	// the partial report still covers everything that committed
	require.NotNil(t, report)
	assert.Equal(t, "second", report.FailedAtPass)
	require.Len(t, report.Passes, 1)
	assert.Equal(t, "first", report.Passes[0].Name)
	assert.Equal(t, int64(3), report.TotalMutations)
	assert.False(t, laterInvoked)
	assert.False(t, validated)
}

func TestRunReportsValidateFailure(t *testing.T) {
	svc := &ReconcileService{}
	boom := errors.New("connection reset")

	report, err := svc.run(context.Background(), GlobalScope(), []pass{
		fakePass("first", 1, nil),
	}, func(ctx context.Context, scope Scope) (ValidationCounts, error) {
		return ValidationCounts{}, boom
	})

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, PassValidate, stepErr.Pass)
	assert.Equal(t, PassValidate, report.FailedAtPass)
	require.Len(t, report.Passes, 1)
	assert.Equal(t, int64(1), report.TotalMutations)
}

func TestRunHonorsCancelledContext(t *testing.T) {
	svc := &ReconcileService{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	invoked := false

	report, err := svc.run(ctx, GlobalScope(), []pass{
		fakePass("first", 1, &invoked),
	}, okValidate(ValidationCounts{}))

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "first", stepErr.Pass)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, invoked)
	assert.Equal(t, "first", report.FailedAtPass)
	assert.Empty(t, report.Passes)
}

func TestValidationCountsTotalIssues(t *testing.T) {
	counts := ValidationCounts{
		RemainingOrphaned:     1,
		RemainingNoAssessment: 2,
		RemainingNoWindows:    3,
		RemainingNoMetadata:   4,
		RemainingUnlinkedSubs: 5,
	}
	assert.Equal(t, int64(15), counts.TotalIssues())
	assert.Equal(t, int64(0), ValidationCounts{}.TotalIssues())
}
