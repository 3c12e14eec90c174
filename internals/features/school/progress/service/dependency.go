// file: internals/features/school/progress/service/dependency.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/progress/model"
)

/* =========================
   Access verdict
   ========================= */

// Status codes carried alongside the verdict for frontend handling
const (
	StatusAllowed          = "ALLOWED"
	StatusAlreadyCompleted = "ALREADY_COMPLETED"
	StatusPreviousBlocked  = "PREVIOUS_PERIOD_INCOMPLETE"
	StatusAwaitingTeacher  = "AWAITING_CUSTOM_ASSESSMENT"
	StatusNoAssessment     = "NO_ASSESSMENT"
	StatusWindowNotOpen    = "NOT_YET_OPEN"
	StatusWindowClosed     = "EXPIRED"
	StatusWindowUnset      = "WINDOW_NOT_CONFIGURED"
)

// AccessVerdict is the outcome of a period access check. Blocking states are
// normal results, not errors; only missing identities bubble up as errors.
type AccessVerdict struct {
	CanAccess  bool
	Reason     string
	StatusCode string

	BlockingProgressID *uuid.UUID
	WindowStatus       WindowStatus
	MinutesUntilOpen   int64
	MinutesRemaining   int64
	GracePeriodActive  bool

	// PreviousPeriodCompleted is the predecessor's completion state, nil when
	// the period has no predecessor or its row is missing. Carried here so
	// callers never repeat the lookup.
	PreviousPeriodCompleted *bool
}

func allowed(w AssessmentWindow, now time.Time) AccessVerdict {
	return AccessVerdict{
		CanAccess:         true,
		StatusCode:        StatusAllowed,
		WindowStatus:      w.Status(now),
		MinutesRemaining:  w.MinutesRemaining(now),
		GracePeriodActive: w.Status(now) == WindowGracePeriod,
	}
}

func blocked(code, reason string) AccessVerdict {
	return AccessVerdict{CanAccess: false, StatusCode: code, Reason: reason}
}

/* =========================
   Predecessor lookup
   ========================= */

// PredecessorFinder resolves the previous period in a same-topic chain.
// Returning (nil, nil) means the predecessor row is genuinely absent.
type PredecessorFinder interface {
	FindPredecessor(p *model.LessonProgressModel) (*model.LessonProgressModel, error)
}

// GormPredecessorFinder looks the predecessor up by the chain key
// (student, subject, topic) and period_sequence-1.
type GormPredecessorFinder struct {
	DB *gorm.DB
}

func (f *GormPredecessorFinder) FindPredecessor(p *model.LessonProgressModel) (*model.LessonProgressModel, error) {
	if p.LessonProgressPeriodSequence == nil {
		return nil, nil
	}
	var prev model.LessonProgressModel
	err := f.DB.
		Where("lesson_progress_student_id = ?", p.LessonProgressStudentID).
		Where("lesson_progress_subject_id = ?", p.LessonProgressSubjectID).
		Where("lesson_progress_lesson_topic_id = ?", p.LessonProgressLessonTopicID).
		Where("lesson_progress_period_sequence = ?", *p.LessonProgressPeriodSequence-1).
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prev, nil
}

/* =========================
   Dependency engine
   ========================= */

// PeriodDependencyService answers "may this student access this period now".
// Pure read path: no side effects, safe at arbitrary concurrency, never
// called from the reconcile pipeline.
type PeriodDependencyService struct {
	Finder PredecessorFinder
	Now    func() time.Time
}

func NewPeriodDependencyService(db *gorm.DB) *PeriodDependencyService {
	return &PeriodDependencyService{
		Finder: &GormPredecessorFinder{DB: db},
		Now:    time.Now,
	}
}

// CheckAccess runs the checks in priority order:
//  1. already completed
//  2. predecessor completed (same Monday-started week only; a missing
//     predecessor row fails open and is logged as a data anomaly)
//  3. custom assessment created when required
//  4. assessment assigned
//  5. window verdict
//
// The predecessor row is read at most once and its completion state rides on
// the verdict for callers that report it.
func (s *PeriodDependencyService) CheckAccess(p *model.LessonProgressModel) (AccessVerdict, error) {
	now := s.Now()

	var prevCompleted *bool
	var blockingPrev *uuid.UUID
	if p.HasPreviousPeriod() {
		prev, err := s.Finder.FindPredecessor(p)
		if err != nil {
			return AccessVerdict{}, err
		}
		if prev == nil {
			// Fail-open: recoverable by reconciliation. Flagged for review,
			// do not harden to fail-closed without product sign-off.
			log.Printf("[DATA-ANOMALY] progress %s sequence %d has no predecessor row",
				p.LessonProgressID, *p.LessonProgressPeriodSequence)
		} else {
			prevCompleted = &prev.LessonProgressCompleted
			if sameWeek(p.LessonProgressDate, prev.LessonProgressDate) && !prev.LessonProgressCompleted {
				blockingPrev = &prev.LessonProgressID
			}
		}
	}

	v := s.decide(p, now, blockingPrev)
	v.PreviousPeriodCompleted = prevCompleted
	return v, nil
}

func (s *PeriodDependencyService) decide(p *model.LessonProgressModel, now time.Time, blockingPrev *uuid.UUID) AccessVerdict {
	if p.LessonProgressCompleted {
		return blocked(StatusAlreadyCompleted, "Assessment already completed")
	}

	if blockingPrev != nil {
		v := blocked(StatusPreviousBlocked, "Previous period not completed")
		v.BlockingProgressID = blockingPrev
		return v
	}

	if p.NeedsTeacherAssessment() {
		return blocked(StatusAwaitingTeacher, "Waiting for teacher to create custom assessment")
	}

	if p.LessonProgressAssessmentID == nil {
		return blocked(StatusNoAssessment, "No assessment assigned to this period")
	}

	w := AssessmentWindow{
		Start:    p.LessonProgressWindowStart,
		End:      p.LessonProgressWindowEnd,
		GraceEnd: p.LessonProgressGracePeriodEnd,
	}
	switch w.Status(now) {
	case WindowUnset:
		// Fail-closed: never grant access without a real window.
		return blocked(StatusWindowUnset, "Assessment window not configured")
	case WindowNotYetOpen:
		v := blocked(StatusWindowNotOpen, "Assessment not yet available")
		v.WindowStatus = WindowNotYetOpen
		v.MinutesUntilOpen = w.MinutesUntilOpen(now)
		return v
	case WindowExpired:
		v := blocked(StatusWindowClosed, "Assessment window closed")
		v.WindowStatus = WindowExpired
		return v
	default:
		return allowed(w, now)
	}
}

// sameWeek reports whether both dates fall in the same Monday-started week.
// Cross-week chains carry no dependency; only the current week's ordering is
// enforced.
func sameWeek(a, b time.Time) bool {
	return weekStart(a).Equal(weekStart(b))
}

func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
