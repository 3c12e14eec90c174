// file: internals/features/school/assessments/model/assessment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment types consumed by the progress engine
const (
	AssessmentTypeLessonTopic  = "LESSON_TOPIC_ASSESSMENT"
	AssessmentTypeCustomPeriod = "CUSTOM_PERIOD_ASSESSMENT"
)

// AssessmentModel maps the `assessments` table. The table is owned by the
// assessment service; this engine reads it and creates custom period
// assessments only.
type AssessmentModel struct {
	// =========================
	// Primary Key
	// =========================
	AssessmentID uuid.UUID `json:"assessment_id" gorm:"column:assessment_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// References
	// =========================
	AssessmentLessonTopicID    *uuid.UUID `json:"assessment_lesson_topic_id" gorm:"column:assessment_lesson_topic_id;type:uuid;index:idx_assessment_topic"`
	AssessmentTargetStudentID  *uuid.UUID `json:"assessment_target_student_id" gorm:"column:assessment_target_student_id;type:uuid;index:idx_assessment_target_student"`
	AssessmentTargetProgressID *uuid.UUID `json:"assessment_target_progress_id" gorm:"column:assessment_target_progress_id;type:uuid;uniqueIndex:uq_assessment_target_progress"`
	AssessmentCreatedByUserID  *uuid.UUID `json:"assessment_created_by_user_id" gorm:"column:assessment_created_by_user_id;type:uuid"`

	// =========================
	// Data
	// =========================
	AssessmentTitle      string  `json:"assessment_title" gorm:"column:assessment_title;type:varchar(180);not null"`
	AssessmentType       string  `json:"assessment_type" gorm:"column:assessment_type;type:varchar(40);not null;index:idx_assessment_type"`
	AssessmentIsCustom   bool    `json:"assessment_is_custom" gorm:"column:assessment_is_custom;not null;default:false"`
	AssessmentTotalMarks float64 `json:"assessment_total_marks" gorm:"column:assessment_total_marks;type:numeric(6,2);not null;default:100"`

	// =========================
	// Timestamps
	// =========================
	AssessmentCreatedAt time.Time      `json:"assessment_created_at" gorm:"column:assessment_created_at;not null;autoCreateTime"`
	AssessmentUpdatedAt time.Time      `json:"assessment_updated_at" gorm:"column:assessment_updated_at;not null;autoUpdateTime"`
	AssessmentDeletedAt gorm.DeletedAt `json:"assessment_deleted_at" gorm:"column:assessment_deleted_at;index"`
}

func (AssessmentModel) TableName() string {
	return "assessments"
}

// IsCustomAssessment reports whether this assessment was created for one
// specific student/period rather than for the topic at large.
func (a *AssessmentModel) IsCustomAssessment() bool {
	return a.AssessmentIsCustom || a.AssessmentType == AssessmentTypeCustomPeriod
}
