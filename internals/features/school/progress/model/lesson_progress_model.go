// file: internals/features/school/progress/model/lesson_progress_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Incomplete reasons stamped by the grace-expiry sweep
const (
	IncompleteReasonMissedGrace = "MISSED_GRACE_PERIOD"
)

// LessonProgressModel maps the `lesson_progress` table: per-student,
// per-period progress. Identity is (student, lesson_topic, date,
// period_number); the schedule link is nullable, a record with no schedule
// is "orphaned" and gets re-attached by reconciliation.
//
// Invariants:
//   - completed=true implies completed_at set (and score, when scored)
//   - period_sequence >= 2 with requires_custom_assessment=true must never
//     carry the topic's generic assessment; it waits for a custom one
//   - completed records are never deleted, only unlinked
type LessonProgressModel struct {
	// =========================
	// Primary Key
	// =========================
	LessonProgressID uuid.UUID `json:"lesson_progress_id" gorm:"column:lesson_progress_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// Identity (unique)
	// =========================
	LessonProgressStudentID     uuid.UUID `json:"lesson_progress_student_id" gorm:"column:lesson_progress_student_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_identity,priority:1"`
	LessonProgressLessonTopicID uuid.UUID `json:"lesson_progress_lesson_topic_id" gorm:"column:lesson_progress_lesson_topic_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_identity,priority:2"`
	LessonProgressDate          time.Time `json:"lesson_progress_date" gorm:"column:lesson_progress_date;type:date;not null;uniqueIndex:uq_lesson_progress_identity,priority:3;index:idx_lesson_progress_date"`
	LessonProgressPeriodNumber  int       `json:"lesson_progress_period_number" gorm:"column:lesson_progress_period_number;not null;uniqueIndex:uq_lesson_progress_identity,priority:4"`

	// =========================
	// References (all nullable, repaired by reconciliation)
	// =========================
	LessonProgressSubjectID       uuid.UUID  `json:"lesson_progress_subject_id" gorm:"column:lesson_progress_subject_id;type:uuid;not null;index:idx_lesson_progress_subject"`
	LessonProgressDailyScheduleID *uuid.UUID `json:"lesson_progress_daily_schedule_id" gorm:"column:lesson_progress_daily_schedule_id;type:uuid;index:idx_lesson_progress_schedule"`
	LessonProgressAssessmentID    *uuid.UUID `json:"lesson_progress_assessment_id" gorm:"column:lesson_progress_assessment_id;type:uuid;index:idx_lesson_progress_assessment"`
	LessonProgressSubmissionID    *uuid.UUID `json:"lesson_progress_submission_id" gorm:"column:lesson_progress_submission_id;type:uuid;index:idx_lesson_progress_submission"`

	// =========================
	// Completion
	// =========================
	LessonProgressCompleted   bool       `json:"lesson_progress_completed" gorm:"column:lesson_progress_completed;not null;default:false"`
	LessonProgressCompletedAt *time.Time `json:"lesson_progress_completed_at" gorm:"column:lesson_progress_completed_at"`
	LessonProgressScore       *float64   `json:"lesson_progress_score" gorm:"column:lesson_progress_score;type:numeric(5,2)"`

	LessonProgressIncompleteReason       *string    `json:"lesson_progress_incomplete_reason" gorm:"column:lesson_progress_incomplete_reason;type:varchar(40)"`
	LessonProgressAutoMarkedIncompleteAt *time.Time `json:"lesson_progress_auto_marked_incomplete_at" gorm:"column:lesson_progress_auto_marked_incomplete_at"`

	// =========================
	// Assessment window
	// =========================
	LessonProgressWindowStart          *time.Time `json:"lesson_progress_window_start" gorm:"column:lesson_progress_window_start"`
	LessonProgressWindowEnd            *time.Time `json:"lesson_progress_window_end" gorm:"column:lesson_progress_window_end"`
	LessonProgressGracePeriodEnd       *time.Time `json:"lesson_progress_grace_period_end" gorm:"column:lesson_progress_grace_period_end"`
	LessonProgressAssessmentAccessible bool       `json:"lesson_progress_assessment_accessible" gorm:"column:lesson_progress_assessment_accessible;not null;default:false"`

	// =========================
	// Multi-period sequence metadata
	// =========================
	LessonProgressPeriodSequence *int           `json:"lesson_progress_period_sequence" gorm:"column:lesson_progress_period_sequence"`
	LessonProgressTotalPeriods   *int           `json:"lesson_progress_total_periods" gorm:"column:lesson_progress_total_periods"`
	LessonProgressLinkedIDs      datatypes.JSON `json:"lesson_progress_linked_ids" gorm:"column:lesson_progress_linked_ids;type:jsonb"`

	// =========================
	// Custom assessment flow
	// =========================
	LessonProgressRequiresCustomAssessment  bool       `json:"lesson_progress_requires_custom_assessment" gorm:"column:lesson_progress_requires_custom_assessment;not null;default:false"`
	LessonProgressCustomAssessmentCreatedAt *time.Time `json:"lesson_progress_custom_assessment_created_at" gorm:"column:lesson_progress_custom_assessment_created_at"`

	// =========================
	// Timestamps
	// =========================
	LessonProgressCreatedAt time.Time `json:"lesson_progress_created_at" gorm:"column:lesson_progress_created_at;not null;autoCreateTime"`
	LessonProgressUpdatedAt time.Time `json:"lesson_progress_updated_at" gorm:"column:lesson_progress_updated_at;not null;autoUpdateTime"`
}

func (LessonProgressModel) TableName() string {
	return "lesson_progress"
}

// HasPreviousPeriod reports whether this record sits past the head of its
// same-topic chain.
func (p *LessonProgressModel) HasPreviousPeriod() bool {
	return p.LessonProgressPeriodSequence != nil && *p.LessonProgressPeriodSequence > 1
}

// NeedsTeacherAssessment reports the transient "waiting for teacher" state.
func (p *LessonProgressModel) NeedsTeacherAssessment() bool {
	return p.LessonProgressRequiresCustomAssessment && p.LessonProgressAssessmentID == nil
}
