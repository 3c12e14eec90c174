// file: internals/features/school/reconcile/service/passes_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	progressModel "edupath_backend/internals/features/school/progress/model"
)

func TestLaterPeriodNeedsCustom(t *testing.T) {
	attached := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  progressModel.LessonProgressModel
		seq  int
		want bool
	}{
		{
			name: "chain head never waits",
			rec:  progressModel.LessonProgressModel{},
			seq:  1,
			want: false,
		},
		{
			name: "incomplete later period waits",
			rec:  progressModel.LessonProgressModel{LessonProgressRequiresCustomAssessment: true},
			seq:  2,
			want: true,
		},
		{
			name: "flag off does not exempt a stale generic copy",
			rec:  progressModel.LessonProgressModel{LessonProgressRequiresCustomAssessment: false},
			seq:  2,
			want: true,
		},
		{
			name: "completed record keeps its assessment",
			rec:  progressModel.LessonProgressModel{LessonProgressCompleted: true},
			seq:  3,
			want: false,
		},
		{
			name: "teacher already attached a custom assessment",
			rec:  progressModel.LessonProgressModel{LessonProgressCustomAssessmentCreatedAt: &attached},
			seq:  2,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, laterPeriodNeedsCustom(&tt.rec, tt.seq))
		})
	}
}
