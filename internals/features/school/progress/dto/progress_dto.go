// file: internals/features/school/progress/dto/progress_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"edupath_backend/internals/features/school/progress/model"
)

/* =========================
   Access check response
   ========================= */

type AccessCheckResponse struct {
	ProgressID uuid.UUID `json:"progress_id"`
	CanAccess  bool      `json:"can_access"`
	Reason     *string   `json:"reason"`
	StatusCode string    `json:"status_code"`

	PeriodNumber   int  `json:"period_number"`
	PeriodSequence *int `json:"period_sequence"`
	TotalPeriods   *int `json:"total_periods"`

	HasPreviousPeriod       bool       `json:"has_previous_period"`
	PreviousPeriodCompleted *bool      `json:"previous_period_completed"`
	BlockingProgressID      *uuid.UUID `json:"blocking_progress_id,omitempty"`

	RequiresCustomAssessment bool `json:"requires_custom_assessment"`
	AssessmentCreated        bool `json:"assessment_created"`

	AssessmentWindowStart *time.Time `json:"assessment_window_start"`
	AssessmentWindowEnd   *time.Time `json:"assessment_window_end"`
	GracePeriodEnd        *time.Time `json:"grace_period_end"`
	WindowStatus          string     `json:"window_status,omitempty"`
	MinutesUntilOpen      int64      `json:"minutes_until_open,omitempty"`
	MinutesRemaining      int64      `json:"minutes_remaining,omitempty"`
	GracePeriodActive     bool       `json:"grace_period_active"`

	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CurrentTime time.Time  `json:"current_time"`
}

/* =========================
   Progress list item
   ========================= */

type ProgressItemResponse struct {
	LessonProgressID uuid.UUID  `json:"lesson_progress_id"`
	StudentID        uuid.UUID  `json:"student_id"`
	SubjectID        uuid.UUID  `json:"subject_id"`
	LessonTopicID    uuid.UUID  `json:"lesson_topic_id"`
	Date             time.Time  `json:"date"`
	PeriodNumber     int        `json:"period_number"`
	PeriodSequence   *int       `json:"period_sequence"`
	TotalPeriods     *int       `json:"total_periods"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	Score            *float64   `json:"score"`
	IncompleteReason *string    `json:"incomplete_reason"`

	DailyScheduleID *uuid.UUID `json:"daily_schedule_id"`
	AssessmentID    *uuid.UUID `json:"assessment_id"`
	SubmissionID    *uuid.UUID `json:"submission_id"`

	WindowStart          *time.Time `json:"window_start"`
	WindowEnd            *time.Time `json:"window_end"`
	GracePeriodEnd       *time.Time `json:"grace_period_end"`
	AssessmentAccessible bool       `json:"assessment_accessible"`

	RequiresCustomAssessment bool `json:"requires_custom_assessment"`
}

func FromProgressModel(m *model.LessonProgressModel) ProgressItemResponse {
	return ProgressItemResponse{
		LessonProgressID:         m.LessonProgressID,
		StudentID:                m.LessonProgressStudentID,
		SubjectID:                m.LessonProgressSubjectID,
		LessonTopicID:            m.LessonProgressLessonTopicID,
		Date:                     m.LessonProgressDate,
		PeriodNumber:             m.LessonProgressPeriodNumber,
		PeriodSequence:           m.LessonProgressPeriodSequence,
		TotalPeriods:             m.LessonProgressTotalPeriods,
		Completed:                m.LessonProgressCompleted,
		CompletedAt:              m.LessonProgressCompletedAt,
		Score:                    m.LessonProgressScore,
		IncompleteReason:         m.LessonProgressIncompleteReason,
		DailyScheduleID:          m.LessonProgressDailyScheduleID,
		AssessmentID:             m.LessonProgressAssessmentID,
		SubmissionID:             m.LessonProgressSubmissionID,
		WindowStart:              m.LessonProgressWindowStart,
		WindowEnd:                m.LessonProgressWindowEnd,
		GracePeriodEnd:           m.LessonProgressGracePeriodEnd,
		AssessmentAccessible:     m.LessonProgressAssessmentAccessible,
		RequiresCustomAssessment: m.LessonProgressRequiresCustomAssessment,
	}
}
