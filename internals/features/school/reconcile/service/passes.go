// file: internals/features/school/reconcile/service/passes.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath_backend/internals/configs"
	assessmentModel "edupath_backend/internals/features/school/assessments/model"
	progressModel "edupath_backend/internals/features/school/progress/model"
	scheduleModel "edupath_backend/internals/features/school/schedules/model"
	topicModel "edupath_backend/internals/features/school/topics/model"
)

// backfillTopics assigns the next unused topic (by sequence_order) to every
// schedule slot that has none, then repairs the missing_topic flag in both
// directions. A topic counts as used once any schedule of the same
// student+subject references it.
func (s *ReconcileService) backfillTopics(tx *gorm.DB, scope Scope) (int64, error) {
	var total int64

	var pending []scheduleModel.DailyScheduleModel
	err := scope.apply(tx, "daily_schedule_student_id", "daily_schedule_date").
		Where("daily_schedule_lesson_topic_id IS NULL").
		Order("daily_schedule_student_id, daily_schedule_subject_id, daily_schedule_date, daily_schedule_period_number").
		Find(&pending).Error
	if err != nil {
		return total, err
	}

	type pairKey struct {
		student uuid.UUID
		subject uuid.UUID
	}
	groups := map[pairKey][]scheduleModel.DailyScheduleModel{}
	var order []pairKey
	for _, sch := range pending {
		key := pairKey{sch.DailyScheduleStudentID, sch.DailyScheduleSubjectID}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], sch)
	}

	for _, key := range order {
		var topics []topicModel.LessonTopicModel
		if err := tx.
			Where("lesson_topic_student_id = ? AND lesson_topic_subject_id = ?", key.student, key.subject).
			Order("lesson_topic_sequence_order ASC, lesson_topic_created_at ASC").
			Find(&topics).Error; err != nil {
			return total, err
		}

		var usedIDs []uuid.UUID
		if err := tx.Model(&scheduleModel.DailyScheduleModel{}).
			Where("daily_schedule_student_id = ? AND daily_schedule_subject_id = ? AND daily_schedule_lesson_topic_id IS NOT NULL",
				key.student, key.subject).
			Distinct().
			Pluck("daily_schedule_lesson_topic_id", &usedIDs).Error; err != nil {
			return total, err
		}
		used := make(map[uuid.UUID]bool, len(usedIDs))
		for _, id := range usedIDs {
			used[id] = true
		}

		var free []uuid.UUID
		for _, t := range topics {
			if !used[t.LessonTopicID] {
				free = append(free, t.LessonTopicID)
			}
		}

		for _, sch := range groups[key] {
			if len(free) == 0 {
				break
			}
			topicID := free[0]
			free = free[1:]

			// conditional update so a concurrent run never double-assigns
			res := tx.Model(&scheduleModel.DailyScheduleModel{}).
				Where("daily_schedule_id = ? AND daily_schedule_lesson_topic_id IS NULL", sch.DailyScheduleID).
				Updates(map[string]interface{}{
					"daily_schedule_lesson_topic_id": topicID,
					"daily_schedule_missing_topic":   false,
				})
			if res.Error != nil {
				return total, res.Error
			}
			total += res.RowsAffected
		}
	}

	conds, args := scope.cond("daily_schedule_student_id", "daily_schedule_date")

	res := tx.Exec(`
		UPDATE daily_schedules SET
			daily_schedule_missing_topic = true,
			daily_schedule_updated_at = NOW()
		WHERE `+conds+`
		  AND daily_schedule_deleted_at IS NULL
		  AND daily_schedule_lesson_topic_id IS NULL
		  AND daily_schedule_missing_topic = false`, args...)
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	res = tx.Exec(`
		UPDATE daily_schedules SET
			daily_schedule_missing_topic = false,
			daily_schedule_updated_at = NOW()
		WHERE `+conds+`
		  AND daily_schedule_deleted_at IS NULL
		  AND daily_schedule_lesson_topic_id IS NOT NULL
		  AND daily_schedule_missing_topic = true`, args...)
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	return total, nil
}

// clearStaleAssessments strips generic assessments that leaked onto later
// periods of a multi-period chain and forces the custom-assessment wait
// state back on. Those periods wait for a custom assessment, so a non-null
// assessment without a custom-created stamp is always a copy that slipped
// through, whatever the requires flag currently says.
func (s *ReconcileService) clearStaleAssessments(tx *gorm.DB, scope Scope) (int64, error) {
	conds, args := scope.cond("lesson_progress_student_id", "lesson_progress_date")

	res := tx.Exec(`
		UPDATE lesson_progress SET
			lesson_progress_assessment_id = NULL,
			lesson_progress_assessment_accessible = false,
			lesson_progress_requires_custom_assessment = true,
			lesson_progress_updated_at = NOW()
		WHERE `+conds+`
		  AND lesson_progress_period_sequence >= 2
		  AND lesson_progress_custom_assessment_created_at IS NULL
		  AND lesson_progress_assessment_id IS NOT NULL
		  AND lesson_progress_completed = false`, args...)
	return res.RowsAffected, res.Error
}

// linkOrphans re-attaches progress records that lost their schedule link,
// matching on the (student, date, period, topic) slot identity.
func (s *ReconcileService) linkOrphans(tx *gorm.DB, scope Scope) (int64, error) {
	conds, args := scope.cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")

	res := tx.Exec(`
		UPDATE lesson_progress lp SET
			lesson_progress_daily_schedule_id = ds.daily_schedule_id,
			lesson_progress_updated_at = NOW()
		FROM daily_schedules ds
		WHERE `+conds+`
		  AND lp.lesson_progress_daily_schedule_id IS NULL
		  AND ds.daily_schedule_student_id = lp.lesson_progress_student_id
		  AND ds.daily_schedule_date = lp.lesson_progress_date
		  AND ds.daily_schedule_period_number = lp.lesson_progress_period_number
		  AND ds.daily_schedule_lesson_topic_id = lp.lesson_progress_lesson_topic_id
		  AND ds.daily_schedule_deleted_at IS NULL`, args...)
	return res.RowsAffected, res.Error
}

// linkAssessments propagates topic assessments onto schedules, then onto
// first-period progress records, and recomputes accessibility. Later periods
// of a chain are excluded structurally so the stale-copy bug cannot recur.
func (s *ReconcileService) linkAssessments(tx *gorm.DB, scope Scope) (int64, error) {
	var total int64

	dsConds, dsArgs := scope.cond("ds.daily_schedule_student_id", "ds.daily_schedule_date")
	res := tx.Exec(`
		UPDATE daily_schedules ds SET
			daily_schedule_assessment_id = a.assessment_id,
			daily_schedule_updated_at = NOW()
		FROM assessments a
		WHERE `+dsConds+`
		  AND ds.daily_schedule_assessment_id IS NULL
		  AND ds.daily_schedule_lesson_topic_id IS NOT NULL
		  AND ds.daily_schedule_deleted_at IS NULL
		  AND a.assessment_lesson_topic_id = ds.daily_schedule_lesson_topic_id
		  AND a.assessment_type = ?
		  AND a.assessment_deleted_at IS NULL`,
		append(dsArgs, assessmentModel.AssessmentTypeLessonTopic)...)
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	lpConds, lpArgs := scope.cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")
	res = tx.Exec(`
		UPDATE lesson_progress lp SET
			lesson_progress_assessment_id = ds.daily_schedule_assessment_id,
			lesson_progress_updated_at = NOW()
		FROM daily_schedules ds
		WHERE `+lpConds+`
		  AND lp.lesson_progress_daily_schedule_id = ds.daily_schedule_id
		  AND lp.lesson_progress_assessment_id IS NULL
		  AND ds.daily_schedule_assessment_id IS NOT NULL
		  AND NOT (COALESCE(lp.lesson_progress_period_sequence, 1) >= 2
		           AND lp.lesson_progress_requires_custom_assessment = true)`, lpArgs...)
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	n, err := s.recomputeAccessibility(tx, scope)
	if err != nil {
		return total, err
	}
	total += n

	return total, nil
}

// recomputeAccessibility re-evaluates the accessible flag against the stored
// window, grace end included. Guarded so an already-correct row costs nothing.
func (s *ReconcileService) recomputeAccessibility(tx *gorm.DB, scope Scope) (int64, error) {
	conds, args := scope.cond("lesson_progress_student_id", "lesson_progress_date")

	const accessibleExpr = `COALESCE(
		lesson_progress_window_start IS NOT NULL
		AND lesson_progress_window_start <= NOW()
		AND GREATEST(lesson_progress_window_end,
		             COALESCE(lesson_progress_grace_period_end, lesson_progress_window_end)) >= NOW(),
		false)`

	res := tx.Exec(`
		UPDATE lesson_progress SET
			lesson_progress_assessment_accessible = `+accessibleExpr+`,
			lesson_progress_updated_at = NOW()
		WHERE `+conds+`
		  AND lesson_progress_completed = false
		  AND lesson_progress_incomplete_reason IS NULL
		  AND lesson_progress_assessment_id IS NOT NULL
		  AND lesson_progress_assessment_accessible IS DISTINCT FROM `+accessibleExpr, args...)
	return res.RowsAffected, res.Error
}

// materializeProgress inserts the progress record for every schedule slot
// that has a topic but no progress row yet. Windows are derived inline from
// the schedule's date and period times. ON CONFLICT keeps concurrent runs
// from tripping the identity constraint.
func (s *ReconcileService) materializeProgress(tx *gorm.DB, scope Scope) (int64, error) {
	conds, args := scope.cond("ds.daily_schedule_student_id", "ds.daily_schedule_date")

	res := tx.Exec(`
		INSERT INTO lesson_progress (
			lesson_progress_id,
			lesson_progress_student_id,
			lesson_progress_lesson_topic_id,
			lesson_progress_date,
			lesson_progress_period_number,
			lesson_progress_subject_id,
			lesson_progress_daily_schedule_id,
			lesson_progress_assessment_id,
			lesson_progress_window_start,
			lesson_progress_window_end,
			lesson_progress_grace_period_end,
			lesson_progress_created_at,
			lesson_progress_updated_at
		)
		SELECT
			gen_random_uuid(),
			ds.daily_schedule_student_id,
			ds.daily_schedule_lesson_topic_id,
			ds.daily_schedule_date,
			ds.daily_schedule_period_number,
			ds.daily_schedule_subject_id,
			ds.daily_schedule_id,
			ds.daily_schedule_assessment_id,
			ds.daily_schedule_date + ds.daily_schedule_start_time,
			ds.daily_schedule_date + ds.daily_schedule_end_time,
			ds.daily_schedule_date + ds.daily_schedule_end_time + make_interval(mins => ?),
			NOW(),
			NOW()
		FROM daily_schedules ds
		WHERE `+conds+`
		  AND ds.daily_schedule_lesson_topic_id IS NOT NULL
		  AND ds.daily_schedule_deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM lesson_progress lp
			WHERE lp.lesson_progress_student_id = ds.daily_schedule_student_id
			  AND lp.lesson_progress_lesson_topic_id = ds.daily_schedule_lesson_topic_id
			  AND lp.lesson_progress_date = ds.daily_schedule_date
			  AND lp.lesson_progress_period_number = ds.daily_schedule_period_number
		  )
		ON CONFLICT (
			lesson_progress_student_id,
			lesson_progress_lesson_topic_id,
			lesson_progress_date,
			lesson_progress_period_number
		) DO NOTHING`,
		append([]interface{}{configs.GracePeriodMinutes}, args...)...)
	return res.RowsAffected, res.Error
}

// linkSubmissions attaches submissions and marks completion. Generic topic
// submissions complete the first period only; custom assessments match their
// target record directly, whatever its sequence. Scores normalize to 0-100.
func (s *ReconcileService) linkSubmissions(tx *gorm.DB, scope Scope) (int64, error) {
	var total int64
	conds, args := scope.cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")

	const completionSet = `
			lesson_progress_submission_id = sub.assessment_submission_id,
			lesson_progress_completed = true,
			lesson_progress_completed_at = sub.assessment_submission_submitted_at,
			lesson_progress_score = CASE
				WHEN sub.assessment_submission_total_marks > 0
				THEN ROUND((sub.assessment_submission_score / sub.assessment_submission_total_marks * 100)::numeric, 2)
				ELSE NULL
			END,
			lesson_progress_incomplete_reason = NULL,
			lesson_progress_auto_marked_incomplete_at = NULL,
			lesson_progress_assessment_accessible = false,
			lesson_progress_updated_at = NOW()`

	res := tx.Exec(`
		UPDATE lesson_progress lp SET`+completionSet+`
		FROM assessment_submissions sub
		JOIN assessments a ON a.assessment_id = sub.assessment_submission_assessment_id
		WHERE `+conds+`
		  AND lp.lesson_progress_submission_id IS NULL
		  AND lp.lesson_progress_completed = false
		  AND (
			lp.lesson_progress_period_sequence = 1
			OR (lp.lesson_progress_period_sequence IS NULL AND NOT EXISTS (
				SELECT 1 FROM lesson_progress sib
				WHERE sib.lesson_progress_student_id = lp.lesson_progress_student_id
				  AND sib.lesson_progress_lesson_topic_id = lp.lesson_progress_lesson_topic_id
				  AND (sib.lesson_progress_date < lp.lesson_progress_date
				       OR (sib.lesson_progress_date = lp.lesson_progress_date
				           AND sib.lesson_progress_period_number < lp.lesson_progress_period_number))
			))
		  )
		  AND sub.assessment_submission_student_id = lp.lesson_progress_student_id
		  AND sub.assessment_submission_nullified_at IS NULL
		  AND a.assessment_lesson_topic_id = lp.lesson_progress_lesson_topic_id
		  AND a.assessment_type = ?
		  AND a.assessment_deleted_at IS NULL`,
		append(args, assessmentModel.AssessmentTypeLessonTopic)...)
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	// custom assessments target one record each, so the handful of matches
	// is linked row by row with the score normalized in Go
	type customMatch struct {
		ProgressID   uuid.UUID `gorm:"column:progress_id"`
		SubmissionID uuid.UUID `gorm:"column:submission_id"`
		SubmittedAt  time.Time `gorm:"column:submitted_at"`
		Score        float64   `gorm:"column:score"`
		TotalMarks   float64   `gorm:"column:total_marks"`
	}
	var matches []customMatch
	err := tx.Raw(`
		SELECT
			lp.lesson_progress_id AS progress_id,
			sub.assessment_submission_id AS submission_id,
			sub.assessment_submission_submitted_at AS submitted_at,
			sub.assessment_submission_score AS score,
			sub.assessment_submission_total_marks AS total_marks
		FROM lesson_progress lp
		JOIN assessment_submissions sub
			ON sub.assessment_submission_assessment_id = lp.lesson_progress_assessment_id
			AND sub.assessment_submission_student_id = lp.lesson_progress_student_id
			AND sub.assessment_submission_nullified_at IS NULL
		JOIN assessments a
			ON a.assessment_id = sub.assessment_submission_assessment_id
			AND a.assessment_is_custom = true
			AND a.assessment_deleted_at IS NULL
		WHERE `+conds+`
		  AND lp.lesson_progress_submission_id IS NULL
		  AND lp.lesson_progress_completed = false`, args...).
		Scan(&matches).Error
	if err != nil {
		return total, err
	}

	for _, m := range matches {
		res := tx.Model(&progressModel.LessonProgressModel{}).
			Where("lesson_progress_id = ? AND lesson_progress_submission_id IS NULL", m.ProgressID).
			Updates(map[string]interface{}{
				"lesson_progress_submission_id":             m.SubmissionID,
				"lesson_progress_completed":                 true,
				"lesson_progress_completed_at":              m.SubmittedAt,
				"lesson_progress_score":                     NormalizeScore(m.Score, m.TotalMarks),
				"lesson_progress_incomplete_reason":         nil,
				"lesson_progress_auto_marked_incomplete_at": nil,
				"lesson_progress_assessment_accessible":     false,
			})
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}

	return total, nil
}

// repairWindows re-derives window_start/end and the grace end from the linked
// schedule for every incomplete record whose stored window disagrees, then
// recomputes accessibility.
func (s *ReconcileService) repairWindows(tx *gorm.DB, scope Scope) (int64, error) {
	conds, args := scope.cond("lp.lesson_progress_student_id", "lp.lesson_progress_date")
	grace := configs.GracePeriodMinutes

	res := tx.Exec(`
		UPDATE lesson_progress lp SET
			lesson_progress_window_start = ds.daily_schedule_date + ds.daily_schedule_start_time,
			lesson_progress_window_end = ds.daily_schedule_date + ds.daily_schedule_end_time,
			lesson_progress_grace_period_end = ds.daily_schedule_date + ds.daily_schedule_end_time + make_interval(mins => ?),
			lesson_progress_updated_at = NOW()
		FROM daily_schedules ds
		WHERE `+conds+`
		  AND lp.lesson_progress_daily_schedule_id = ds.daily_schedule_id
		  AND lp.lesson_progress_completed = false
		  AND ds.daily_schedule_deleted_at IS NULL
		  AND (
			lp.lesson_progress_window_start IS DISTINCT FROM ds.daily_schedule_date + ds.daily_schedule_start_time
			OR lp.lesson_progress_window_end IS DISTINCT FROM ds.daily_schedule_date + ds.daily_schedule_end_time
			OR lp.lesson_progress_grace_period_end IS DISTINCT FROM ds.daily_schedule_date + ds.daily_schedule_end_time + make_interval(mins => ?)
		  )`,
		append([]interface{}{grace}, append(args, grace)...)...)
	if res.Error != nil {
		return res.RowsAffected, res.Error
	}
	total := res.RowsAffected

	n, err := s.recomputeAccessibility(tx, scope)
	if err != nil {
		return total, err
	}
	return total + n, nil
}

// laterPeriodNeedsCustom reports whether a record sitting past the chain head
// must wait for a teacher-made assessment. Any generic copy inherited before
// renumbering is stale for such a record, whatever the requires flag says.
func laterPeriodNeedsCustom(rec *progressModel.LessonProgressModel, sequence int) bool {
	return sequence >= 2 &&
		!rec.LessonProgressCompleted &&
		rec.LessonProgressCustomAssessmentCreatedAt == nil
}

// renumberSequences recomputes period_sequence, total_periods and the linked
// sibling ids for every same-topic chain touched by the scope, writing only
// rows whose stored metadata differs. Incomplete rows pushed past the chain
// head lose any generic assessment copy and flip to waiting for a custom one.
func (s *ReconcileService) renumberSequences(tx *gorm.DB, scope Scope) (int64, error) {
	var total int64

	var records []progressModel.LessonProgressModel
	err := scope.apply(tx, "lesson_progress_student_id", "lesson_progress_date").
		Order("lesson_progress_student_id, lesson_progress_subject_id, lesson_progress_lesson_topic_id, lesson_progress_date, lesson_progress_period_number, lesson_progress_created_at").
		Find(&records).Error
	if err != nil {
		return total, err
	}

	assignments := computeSequenceAssignments(records)
	byID := make(map[uuid.UUID]*progressModel.LessonProgressModel, len(records))
	for i := range records {
		byID[records[i].LessonProgressID] = &records[i]
	}

	for _, asg := range assignments {
		rec := byID[asg.ID]
		updates := map[string]interface{}{}

		if rec.LessonProgressPeriodSequence == nil || *rec.LessonProgressPeriodSequence != asg.Sequence {
			updates["lesson_progress_period_sequence"] = asg.Sequence
		}
		if rec.LessonProgressTotalPeriods == nil || *rec.LessonProgressTotalPeriods != asg.Total {
			updates["lesson_progress_total_periods"] = asg.Total
		}
		if !sameLinkedIDs(rec.LessonProgressLinkedIDs, asg.LinkedIDs) {
			raw, err := marshalLinkedIDs(asg.LinkedIDs)
			if err != nil {
				return total, err
			}
			updates["lesson_progress_linked_ids"] = raw
		}

		if laterPeriodNeedsCustom(rec, asg.Sequence) {
			if !rec.LessonProgressRequiresCustomAssessment {
				updates["lesson_progress_requires_custom_assessment"] = true
			}
			if rec.LessonProgressAssessmentID != nil {
				updates["lesson_progress_assessment_id"] = nil
				updates["lesson_progress_assessment_accessible"] = false
			}
		}

		if len(updates) == 0 {
			continue
		}
		res := tx.Model(&progressModel.LessonProgressModel{}).
			Where("lesson_progress_id = ?", asg.ID).
			Updates(updates)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}

	return total, nil
}
