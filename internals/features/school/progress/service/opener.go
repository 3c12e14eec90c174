// file: internals/features/school/progress/service/opener.go
package service

import (
	"time"

	"gorm.io/gorm"

	"edupath_backend/internals/features/school/progress/model"
)

// OpenDueAssessments flips assessment_accessible on for incomplete records
// whose window has opened and not yet effectively ended. Set-based and
// re-runnable: rows already open match nothing.
func OpenDueAssessments(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&model.LessonProgressModel{}).
		Where("lesson_progress_assessment_accessible = ?", false).
		Where("lesson_progress_completed = ?", false).
		Where("lesson_progress_incomplete_reason IS NULL").
		Where("lesson_progress_assessment_id IS NOT NULL").
		Where("lesson_progress_window_start IS NOT NULL AND lesson_progress_window_start <= ?", now).
		Where("GREATEST(lesson_progress_window_end, COALESCE(lesson_progress_grace_period_end, lesson_progress_window_end)) >= ?", now).
		Update("lesson_progress_assessment_accessible", true)
	return res.RowsAffected, res.Error
}

// ExpirePastGrace marks incomplete records whose grace deadline has passed:
// locks accessibility and stamps the MISSED_GRACE_PERIOD reason. Completed
// records and records already marked are untouched.
func ExpirePastGrace(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&model.LessonProgressModel{}).
		Where("lesson_progress_completed = ?", false).
		Where("lesson_progress_incomplete_reason IS NULL").
		Where("lesson_progress_window_end IS NOT NULL").
		Where("COALESCE(lesson_progress_grace_period_end, lesson_progress_window_end) < ?", now).
		Updates(map[string]interface{}{
			"lesson_progress_assessment_accessible":     false,
			"lesson_progress_incomplete_reason":         model.IncompleteReasonMissedGrace,
			"lesson_progress_auto_marked_incomplete_at": now,
		})
	return res.RowsAffected, res.Error
}
