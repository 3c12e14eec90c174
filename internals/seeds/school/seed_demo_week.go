// file: internals/seeds/school/seed_demo_week.go
package school

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessmentModel "edupath_backend/internals/features/school/assessments/model"
	scheduleModel "edupath_backend/internals/features/school/schedules/model"
	topicModel "edupath_backend/internals/features/school/topics/model"
	"edupath_backend/internals/helpers/dbtime"
)

// Fixed ids so reruns upsert instead of duplicating.
var (
	demoStudentID = uuid.MustParse("3f1c2a4e-0000-4000-8000-000000000001")
	demoSubjectID = uuid.MustParse("3f1c2a4e-0000-4000-8000-000000000002")
)

// SeedDemoWeek writes one student's week: three ordered topics, a Mon-Wed
// schedule at 09:00-09:30, and a generic assessment on the first topic. The
// rest is left for the reconcile pipeline to materialize, which makes this a
// handy local smoke fixture.
func SeedDemoWeek(db *gorm.DB) error {
	monday := upcomingMonday(time.Now())

	titles := []string{"Introduction", "Core concepts", "Applied practice"}
	topicIDs := make([]uuid.UUID, len(titles))
	for i, title := range titles {
		topic := topicModel.LessonTopicModel{
			LessonTopicStudentID:     demoStudentID,
			LessonTopicSubjectID:     demoSubjectID,
			LessonTopicTitle:         title,
			LessonTopicSequenceOrder: i + 1,
		}
		err := db.Where("lesson_topic_student_id = ? AND lesson_topic_subject_id = ? AND lesson_topic_sequence_order = ?",
			demoStudentID, demoSubjectID, i+1).
			FirstOrCreate(&topic).Error
		if err != nil {
			return err
		}
		topicIDs[i] = topic.LessonTopicID
	}

	start, err := dbtime.Parse("09:00:00")
	if err != nil {
		return err
	}
	end, err := dbtime.Parse("09:30:00")
	if err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		day := monday.AddDate(0, 0, i)
		sched := scheduleModel.DailyScheduleModel{
			DailyScheduleStudentID:     demoStudentID,
			DailyScheduleDate:          day,
			DailySchedulePeriodNumber:  1,
			DailyScheduleSubjectID:     demoSubjectID,
			DailyScheduleLessonTopicID: &topicIDs[i],
			DailyScheduleStartTime:     start,
			DailyScheduleEndTime:       end,
			DailyScheduleSource:        scheduleModel.ScheduleSourceWeeklyTemplate,
		}
		err := db.Where("daily_schedule_student_id = ? AND daily_schedule_date = ? AND daily_schedule_period_number = ?",
			demoStudentID, day, 1).
			FirstOrCreate(&sched).Error
		if err != nil {
			return err
		}
	}

	assessment := assessmentModel.AssessmentModel{
		AssessmentLessonTopicID: &topicIDs[0],
		AssessmentTitle:         "Introduction check",
		AssessmentType:          assessmentModel.AssessmentTypeLessonTopic,
		AssessmentTotalMarks:    100,
	}
	err = db.Where("assessment_lesson_topic_id = ? AND assessment_type = ?",
		topicIDs[0], assessmentModel.AssessmentTypeLessonTopic).
		FirstOrCreate(&assessment).Error
	if err != nil {
		return err
	}

	log.Printf("[SEED] demo week ready: student=%s week=%s", demoStudentID, monday.Format("2006-01-02"))
	return nil
}

func upcomingMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
