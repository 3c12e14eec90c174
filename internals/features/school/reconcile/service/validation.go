// file: internals/features/school/reconcile/service/validation.go
package service

import (
	"context"

	assessmentModel "edupath_backend/internals/features/school/assessments/model"
	progressModel "edupath_backend/internals/features/school/progress/model"
)

// Validate recounts the defect classes the mutation passes exist to fix.
// Read-only; a clean run right after a pipeline reports all_good=true.
func (s *ReconcileService) Validate(ctx context.Context, scope Scope) (ValidationCounts, error) {
	var counts ValidationCounts
	db := s.DB.WithContext(ctx)

	// records detached from an existing schedule slot
	err := scope.apply(db.Model(&progressModel.LessonProgressModel{}), "lesson_progress_student_id", "lesson_progress_date").
		Where("lesson_progress_daily_schedule_id IS NULL").
		Where(`EXISTS (
			SELECT 1 FROM daily_schedules ds
			WHERE ds.daily_schedule_student_id = lesson_progress.lesson_progress_student_id
			  AND ds.daily_schedule_date = lesson_progress.lesson_progress_date
			  AND ds.daily_schedule_period_number = lesson_progress.lesson_progress_period_number
			  AND ds.daily_schedule_lesson_topic_id = lesson_progress.lesson_progress_lesson_topic_id
			  AND ds.daily_schedule_deleted_at IS NULL
		)`).
		Count(&counts.RemainingOrphaned).Error
	if err != nil {
		return counts, err
	}

	// incomplete records owed an assessment their schedule already carries
	err = scope.apply(db.Model(&progressModel.LessonProgressModel{}), "lesson_progress_student_id", "lesson_progress_date").
		Where("lesson_progress_assessment_id IS NULL AND lesson_progress_completed = false").
		Where(`NOT (COALESCE(lesson_progress_period_sequence, 1) >= 2
		       AND lesson_progress_requires_custom_assessment = true)`).
		Where(`EXISTS (
			SELECT 1 FROM daily_schedules ds
			WHERE ds.daily_schedule_id = lesson_progress.lesson_progress_daily_schedule_id
			  AND ds.daily_schedule_assessment_id IS NOT NULL
			  AND ds.daily_schedule_deleted_at IS NULL
		)`).
		Count(&counts.RemainingNoAssessment).Error
	if err != nil {
		return counts, err
	}

	// incomplete assessed records with no usable window
	err = scope.apply(db.Model(&progressModel.LessonProgressModel{}), "lesson_progress_student_id", "lesson_progress_date").
		Where("lesson_progress_completed = false AND lesson_progress_assessment_id IS NOT NULL").
		Where("lesson_progress_window_start IS NULL OR lesson_progress_window_end IS NULL").
		Count(&counts.RemainingNoWindows).Error
	if err != nil {
		return counts, err
	}

	// records missing multi-period metadata
	err = scope.apply(db.Model(&progressModel.LessonProgressModel{}), "lesson_progress_student_id", "lesson_progress_date").
		Where("lesson_progress_period_sequence IS NULL OR lesson_progress_total_periods IS NULL").
		Count(&counts.RemainingNoMetadata).Error
	if err != nil {
		return counts, err
	}

	// first-period records a live submission exists for but never reached
	err = scope.apply(db.Model(&progressModel.LessonProgressModel{}), "lesson_progress_student_id", "lesson_progress_date").
		Where("lesson_progress_completed = false AND lesson_progress_submission_id IS NULL").
		Where("COALESCE(lesson_progress_period_sequence, 1) = 1").
		Where(`EXISTS (
			SELECT 1 FROM assessment_submissions sub
			JOIN assessments a ON a.assessment_id = sub.assessment_submission_assessment_id
			WHERE sub.assessment_submission_student_id = lesson_progress.lesson_progress_student_id
			  AND sub.assessment_submission_nullified_at IS NULL
			  AND a.assessment_lesson_topic_id = lesson_progress.lesson_progress_lesson_topic_id
			  AND a.assessment_type = ?
			  AND a.assessment_deleted_at IS NULL
		)`, assessmentModel.AssessmentTypeLessonTopic).
		Count(&counts.RemainingUnlinkedSubs).Error
	if err != nil {
		return counts, err
	}

	counts.AllGood = counts.TotalIssues() == 0
	return counts, nil
}
