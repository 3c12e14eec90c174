// file: internals/features/school/topics/model/lesson_topic_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonTopicModel maps the `lesson_topics` table: the ordered topic list
// configured for one student+subject. A topic counts as "used" once any
// schedule references it.
type LessonTopicModel struct {
	LessonTopicID uuid.UUID `json:"lesson_topic_id" gorm:"column:lesson_topic_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	LessonTopicStudentID uuid.UUID `json:"lesson_topic_student_id" gorm:"column:lesson_topic_student_id;type:uuid;not null;index:idx_lesson_topic_student_subject,priority:1"`
	LessonTopicSubjectID uuid.UUID `json:"lesson_topic_subject_id" gorm:"column:lesson_topic_subject_id;type:uuid;not null;index:idx_lesson_topic_student_subject,priority:2"`

	LessonTopicTitle         string `json:"lesson_topic_title" gorm:"column:lesson_topic_title;type:varchar(200);not null"`
	LessonTopicSequenceOrder int    `json:"lesson_topic_sequence_order" gorm:"column:lesson_topic_sequence_order;not null;default:0"`

	LessonTopicCreatedAt time.Time      `json:"lesson_topic_created_at" gorm:"column:lesson_topic_created_at;not null;autoCreateTime"`
	LessonTopicUpdatedAt time.Time      `json:"lesson_topic_updated_at" gorm:"column:lesson_topic_updated_at;not null;autoUpdateTime"`
	LessonTopicDeletedAt gorm.DeletedAt `json:"lesson_topic_deleted_at" gorm:"column:lesson_topic_deleted_at;index"`
}

func (LessonTopicModel) TableName() string {
	return "lesson_topics"
}
