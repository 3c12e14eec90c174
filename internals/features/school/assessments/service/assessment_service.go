// file: internals/features/school/assessments/service/assessment_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/assessments/model"
	progressModel "edupath_backend/internals/features/school/progress/model"
	progressService "edupath_backend/internals/features/school/progress/service"
)

var (
	ErrProgressNotFound  = errors.New("progress record not found")
	ErrNotAwaitingCustom = errors.New("progress record is not waiting for a custom assessment")
	ErrDuplicateCustom   = errors.New("a custom assessment already exists for this period's week")
)

type AssessmentService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{DB: db, Now: time.Now}
}

// FindTopicAssessment returns the generic assessment attached to a topic, or
// nil when the topic has none yet.
func (s *AssessmentService) FindTopicAssessment(ctx context.Context, topicID uuid.UUID) (*model.AssessmentModel, error) {
	var a model.AssessmentModel
	err := s.DB.WithContext(ctx).
		Where("assessment_lesson_topic_id = ? AND assessment_type = ?", topicID, model.AssessmentTypeLessonTopic).
		Order("assessment_created_at ASC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type CreateCustomAssessmentInput struct {
	ProgressID uuid.UUID
	Title      string
	TotalMarks float64
	CreatedBy  uuid.UUID
}

// CreateCustomAssessment makes a teacher-authored assessment for one waiting
// later-period record and attaches it. One custom assessment per student,
// topic and week; a second request comes back ErrDuplicateCustom.
func (s *AssessmentService) CreateCustomAssessment(ctx context.Context, in CreateCustomAssessmentInput) (*model.AssessmentModel, error) {
	var created *model.AssessmentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prog progressModel.LessonProgressModel
		err := tx.Where("lesson_progress_id = ?", in.ProgressID).First(&prog).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgressNotFound
		}
		if err != nil {
			return err
		}

		if !prog.LessonProgressRequiresCustomAssessment || prog.LessonProgressAssessmentID != nil || prog.LessonProgressCompleted {
			return ErrNotAwaitingCustom
		}

		weekStart, weekEnd := weekBounds(prog.LessonProgressDate)
		var clash int64
		err = tx.Model(&model.AssessmentModel{}).
			Joins("JOIN lesson_progress lp ON lp.lesson_progress_id = assessments.assessment_target_progress_id").
			Where("assessments.assessment_target_student_id = ?", prog.LessonProgressStudentID).
			Where("assessments.assessment_lesson_topic_id = ?", prog.LessonProgressLessonTopicID).
			Where("assessments.assessment_is_custom = true").
			Where("lp.lesson_progress_date BETWEEN ? AND ?", weekStart, weekEnd).
			Count(&clash).Error
		if err != nil {
			return err
		}
		if clash > 0 {
			return ErrDuplicateCustom
		}

		totalMarks := in.TotalMarks
		if totalMarks <= 0 {
			totalMarks = 100
		}
		assessment := model.AssessmentModel{
			AssessmentLessonTopicID:    &prog.LessonProgressLessonTopicID,
			AssessmentTargetStudentID:  &prog.LessonProgressStudentID,
			AssessmentTargetProgressID: &prog.LessonProgressID,
			AssessmentCreatedByUserID:  &in.CreatedBy,
			AssessmentTitle:            in.Title,
			AssessmentType:             model.AssessmentTypeCustomPeriod,
			AssessmentIsCustom:         true,
			AssessmentTotalMarks:       totalMarks,
		}
		if err := tx.Create(&assessment).Error; err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrDuplicateCustom
			}
			return err
		}

		now := s.Now()
		window := progressService.AssessmentWindow{
			Start:    prog.LessonProgressWindowStart,
			End:      prog.LessonProgressWindowEnd,
			GraceEnd: prog.LessonProgressGracePeriodEnd,
		}
		res := tx.Model(&progressModel.LessonProgressModel{}).
			Where("lesson_progress_id = ? AND lesson_progress_assessment_id IS NULL", prog.LessonProgressID).
			Updates(map[string]interface{}{
				"lesson_progress_assessment_id":                assessment.AssessmentID,
				"lesson_progress_requires_custom_assessment":   false,
				"lesson_progress_custom_assessment_created_at": now,
				"lesson_progress_assessment_accessible":        window.Accessible(now),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDuplicateCustom
		}

		created = &assessment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// weekBounds returns the Monday and Sunday of the week containing d.
func weekBounds(d time.Time) (time.Time, time.Time) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
