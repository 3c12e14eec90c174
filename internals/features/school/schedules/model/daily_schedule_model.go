// file: internals/features/school/schedules/model/daily_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath_backend/internals/helpers/dbtime"
)

// Schedule source tags
const (
	ScheduleSourceIndividual     = "INDIVIDUAL"
	ScheduleSourceWeeklyTemplate = "WEEKLY_TEMPLATE"
)

// DailyScheduleModel maps the `daily_schedules` table: one period placement
// for one student. Identity is (student, date, period_number).
type DailyScheduleModel struct {
	// =========================
	// Primary Key
	// =========================
	DailyScheduleID uuid.UUID `json:"daily_schedule_id" gorm:"column:daily_schedule_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// Identity (unique per student/date/period)
	// =========================
	DailyScheduleStudentID    uuid.UUID `json:"daily_schedule_student_id" gorm:"column:daily_schedule_student_id;type:uuid;not null;uniqueIndex:uq_daily_schedule_slot,priority:1"`
	DailyScheduleDate         time.Time `json:"daily_schedule_date" gorm:"column:daily_schedule_date;type:date;not null;uniqueIndex:uq_daily_schedule_slot,priority:2;index:idx_daily_schedule_date"`
	DailySchedulePeriodNumber int       `json:"daily_schedule_period_number" gorm:"column:daily_schedule_period_number;not null;uniqueIndex:uq_daily_schedule_slot,priority:3"`

	// =========================
	// References
	// =========================
	DailyScheduleSubjectID     uuid.UUID  `json:"daily_schedule_subject_id" gorm:"column:daily_schedule_subject_id;type:uuid;not null;index:idx_daily_schedule_subject"`
	DailyScheduleLessonTopicID *uuid.UUID `json:"daily_schedule_lesson_topic_id" gorm:"column:daily_schedule_lesson_topic_id;type:uuid;index:idx_daily_schedule_topic"`
	DailyScheduleAssessmentID  *uuid.UUID `json:"daily_schedule_assessment_id" gorm:"column:daily_schedule_assessment_id;type:uuid;index:idx_daily_schedule_assessment"`

	// =========================
	// Period times (TIME columns, combined with the date for windows)
	// =========================
	DailyScheduleStartTime dbtime.Tod `json:"daily_schedule_start_time" gorm:"column:daily_schedule_start_time;type:time;not null"`
	DailyScheduleEndTime   dbtime.Tod `json:"daily_schedule_end_time" gorm:"column:daily_schedule_end_time;type:time;not null"`

	// =========================
	// Flags
	// =========================
	DailyScheduleSource       string `json:"daily_schedule_source" gorm:"column:daily_schedule_source;type:varchar(32);not null;default:'INDIVIDUAL';index:idx_daily_schedule_source"`
	DailyScheduleMissingTopic bool   `json:"daily_schedule_missing_topic" gorm:"column:daily_schedule_missing_topic;not null;default:false"`

	// =========================
	// Timestamps
	// =========================
	DailyScheduleCreatedAt time.Time      `json:"daily_schedule_created_at" gorm:"column:daily_schedule_created_at;not null;autoCreateTime"`
	DailyScheduleUpdatedAt time.Time      `json:"daily_schedule_updated_at" gorm:"column:daily_schedule_updated_at;not null;autoUpdateTime"`
	DailyScheduleDeletedAt gorm.DeletedAt `json:"daily_schedule_deleted_at" gorm:"column:daily_schedule_deleted_at;index"`
}

func (DailyScheduleModel) TableName() string {
	return "daily_schedules"
}
