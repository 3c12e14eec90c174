// file: internals/features/school/assessments/dto/assessment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"edupath_backend/internals/features/school/assessments/model"
)

type CreateCustomAssessmentRequest struct {
	ProgressID uuid.UUID `json:"progress_id" validate:"required"`
	Title      string    `json:"title" validate:"required,min=3,max=180"`
	TotalMarks float64   `json:"total_marks" validate:"omitempty,gt=0"`
}

type AssessmentResponse struct {
	AssessmentID     uuid.UUID  `json:"assessment_id"`
	LessonTopicID    *uuid.UUID `json:"lesson_topic_id"`
	TargetStudentID  *uuid.UUID `json:"target_student_id"`
	TargetProgressID *uuid.UUID `json:"target_progress_id"`
	Title            string     `json:"title"`
	Type             string     `json:"type"`
	IsCustom         bool       `json:"is_custom"`
	TotalMarks       float64    `json:"total_marks"`
	CreatedAt        time.Time  `json:"created_at"`
}

func FromAssessmentModel(a *model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID:     a.AssessmentID,
		LessonTopicID:    a.AssessmentLessonTopicID,
		TargetStudentID:  a.AssessmentTargetStudentID,
		TargetProgressID: a.AssessmentTargetProgressID,
		Title:            a.AssessmentTitle,
		Type:             a.AssessmentType,
		IsCustom:         a.AssessmentIsCustom,
		TotalMarks:       a.AssessmentTotalMarks,
		CreatedAt:        a.AssessmentCreatedAt,
	}
}
