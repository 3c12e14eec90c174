// file: internals/features/school/reconcile/service/health.go
package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	progressModel "edupath_backend/internals/features/school/progress/model"
	scheduleModel "edupath_backend/internals/features/school/schedules/model"
)

// HealthReport summarizes one student's progress consistency without
// mutating anything. health_score is 0-100, 100 meaning no known defects.
type HealthReport struct {
	StudentID        uuid.UUID        `json:"student_id"`
	TotalRecords     int64            `json:"total_records"`
	CompletedRecords int64            `json:"completed_records"`
	Breakdown        ValidationCounts `json:"breakdown"`
	TotalIssues      int64            `json:"total_issues"`
	NeedsRepair      bool             `json:"needs_repair"`
	HealthScore      float64          `json:"health_score"`
}

// StatsReport is the admin-wide snapshot across all students.
type StatsReport struct {
	TotalRecords          int64   `json:"total_records"`
	CompletedRecords      int64   `json:"completed_records"`
	AccessibleNow         int64   `json:"accessible_now"`
	AwaitingCustom        int64   `json:"awaiting_custom_assessment"`
	MissedGracePeriod     int64   `json:"missed_grace_period"`
	OrphanedRecords       int64   `json:"orphaned_records"`
	SchedulesMissingTopic int64   `json:"schedules_missing_topic"`
	CompletionRate        float64 `json:"completion_rate"`
}

// StudentHealth runs the validation counters for one student's history.
func (s *ReconcileService) StudentHealth(ctx context.Context, studentID uuid.UUID) (*HealthReport, error) {
	db := s.DB.WithContext(ctx)
	report := &HealthReport{StudentID: studentID}

	err := db.Model(&progressModel.LessonProgressModel{}).
		Where("lesson_progress_student_id = ?", studentID).
		Count(&report.TotalRecords).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&progressModel.LessonProgressModel{}).
		Where("lesson_progress_student_id = ? AND lesson_progress_completed = true", studentID).
		Count(&report.CompletedRecords).Error
	if err != nil {
		return nil, err
	}

	counts, err := s.Validate(ctx, StudentScope(studentID))
	if err != nil {
		return nil, err
	}
	report.Breakdown = counts
	report.TotalIssues = counts.TotalIssues()
	report.NeedsRepair = !counts.AllGood

	if report.TotalRecords == 0 {
		report.HealthScore = 100
	} else {
		penalty := float64(report.TotalIssues) / float64(report.TotalRecords) * 100
		report.HealthScore = math.Round(math.Max(0, 100-penalty)*100) / 100
	}
	return report, nil
}

// Stats aggregates engine-wide counters for the admin dashboard.
func (s *ReconcileService) Stats(ctx context.Context) (*StatsReport, error) {
	db := s.DB.WithContext(ctx)
	report := &StatsReport{}

	type countQuery struct {
		dst   *int64
		where string
	}
	queries := []countQuery{
		{&report.TotalRecords, ""},
		{&report.CompletedRecords, "lesson_progress_completed = true"},
		{&report.AccessibleNow, "lesson_progress_assessment_accessible = true AND lesson_progress_completed = false"},
		{&report.AwaitingCustom, "lesson_progress_requires_custom_assessment = true AND lesson_progress_assessment_id IS NULL AND lesson_progress_completed = false"},
		{&report.MissedGracePeriod, "lesson_progress_incomplete_reason = '" + progressModel.IncompleteReasonMissedGrace + "'"},
		{&report.OrphanedRecords, "lesson_progress_daily_schedule_id IS NULL"},
	}
	for _, q := range queries {
		tx := db.Model(&progressModel.LessonProgressModel{})
		if q.where != "" {
			tx = tx.Where(q.where)
		}
		if err := tx.Count(q.dst).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&scheduleModel.DailyScheduleModel{}).
		Where("daily_schedule_missing_topic = true").
		Count(&report.SchedulesMissingTopic).Error
	if err != nil {
		return nil, err
	}

	if report.TotalRecords > 0 {
		rate := float64(report.CompletedRecords) / float64(report.TotalRecords) * 100
		report.CompletionRate = math.Round(rate*100) / 100
	}
	return report, nil
}
