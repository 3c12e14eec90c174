// file: internals/features/school/assessments/model/submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentSubmissionModel maps the `assessment_submissions` table (owned by
// the assessment service, read here for linking). A nullified submission is
// treated as if it never happened.
type AssessmentSubmissionModel struct {
	AssessmentSubmissionID uuid.UUID `json:"assessment_submission_id" gorm:"column:assessment_submission_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	AssessmentSubmissionAssessmentID uuid.UUID `json:"assessment_submission_assessment_id" gorm:"column:assessment_submission_assessment_id;type:uuid;not null;index:idx_submission_assessment"`
	AssessmentSubmissionStudentID    uuid.UUID `json:"assessment_submission_student_id" gorm:"column:assessment_submission_student_id;type:uuid;not null;index:idx_submission_student"`

	AssessmentSubmissionScore       float64    `json:"assessment_submission_score" gorm:"column:assessment_submission_score;type:numeric(6,2);not null;default:0"`
	AssessmentSubmissionTotalMarks  float64    `json:"assessment_submission_total_marks" gorm:"column:assessment_submission_total_marks;type:numeric(6,2);not null;default:0"`
	AssessmentSubmissionSubmittedAt time.Time  `json:"assessment_submission_submitted_at" gorm:"column:assessment_submission_submitted_at;not null"`
	AssessmentSubmissionNullifiedAt *time.Time `json:"assessment_submission_nullified_at" gorm:"column:assessment_submission_nullified_at"`
}

func (AssessmentSubmissionModel) TableName() string {
	return "assessment_submissions"
}
