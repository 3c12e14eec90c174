// file: internals/features/school/progress/service/window.go
package service

import (
	"time"

	"edupath_backend/internals/configs"
	schedModel "edupath_backend/internals/features/school/schedules/model"
)

/* =========================
   Window status
   ========================= */

type WindowStatus string

const (
	WindowNotYetOpen  WindowStatus = "NOT_YET_OPEN"
	WindowOpen        WindowStatus = "OPEN"
	WindowGracePeriod WindowStatus = "GRACE_PERIOD"
	WindowExpired     WindowStatus = "EXPIRED"
	WindowUnset       WindowStatus = "NOT_CONFIGURED"
)

// AssessmentWindow is the attemptable interval for one period's assessment.
// GraceEnd extends End; a nil Start or End means the window was never
// configured, which reconciliation treats as a defect.
type AssessmentWindow struct {
	Start    *time.Time
	End      *time.Time
	GraceEnd *time.Time
}

/* =========================
   Derivation
   ========================= */

// DeriveWindow computes a schedule's assessment window: scheduled date
// combined with the period's start/end time-of-day, grace = end + the
// configured add-on (15 minutes by default).
func DeriveWindow(s *schedModel.DailyScheduleModel) AssessmentWindow {
	start := s.DailyScheduleStartTime.On(s.DailyScheduleDate)
	end := s.DailyScheduleEndTime.On(s.DailyScheduleDate)
	grace := end.Add(GraceAddOn())
	return AssessmentWindow{Start: &start, End: &end, GraceEnd: &grace}
}

// GraceAddOn returns the configured grace duration past window end.
func GraceAddOn() time.Duration {
	minutes := configs.GracePeriodMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

/* =========================
   Accessibility verdict (pure)
   ========================= */

// EffectiveEnd is max(End, GraceEnd); GraceEnd defaults to End when absent.
func (w AssessmentWindow) EffectiveEnd() *time.Time {
	if w.End == nil {
		return nil
	}
	if w.GraceEnd != nil && w.GraceEnd.After(*w.End) {
		return w.GraceEnd
	}
	return w.End
}

// Accessible reports whether now falls inside [Start, max(End, GraceEnd)].
// An unconfigured window is never accessible.
func (w AssessmentWindow) Accessible(now time.Time) bool {
	if w.Start == nil || w.End == nil {
		return false
	}
	end := w.EffectiveEnd()
	return !now.Before(*w.Start) && !now.After(*end)
}

// Status classifies now against the window for display purposes.
func (w AssessmentWindow) Status(now time.Time) WindowStatus {
	if w.Start == nil || w.End == nil {
		return WindowUnset
	}
	switch {
	case now.Before(*w.Start):
		return WindowNotYetOpen
	case now.After(*w.EffectiveEnd()):
		return WindowExpired
	case now.After(*w.End):
		return WindowGracePeriod
	default:
		return WindowOpen
	}
}

// MinutesUntilOpen is the wait before Start, zero once open.
func (w AssessmentWindow) MinutesUntilOpen(now time.Time) int64 {
	if w.Start == nil || !now.Before(*w.Start) {
		return 0
	}
	return int64(w.Start.Sub(now).Minutes())
}

// MinutesRemaining is the time left until the effective end, zero when past.
func (w AssessmentWindow) MinutesRemaining(now time.Time) int64 {
	end := w.EffectiveEnd()
	if end == nil || now.After(*end) {
		return 0
	}
	return int64(end.Sub(now).Minutes())
}
