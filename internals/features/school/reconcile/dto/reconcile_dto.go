// file: internals/features/school/reconcile/dto/reconcile_dto.go
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"edupath_backend/internals/features/school/reconcile/service"
)

// ReconcileRequest selects the repair scope. Exactly one shape:
//   - student_id          -> one student's full history
//   - from + to           -> a date range across all students
//   - week_start          -> sugar for the Monday-started week containing it
//   - empty body          -> global
type ReconcileRequest struct {
	StudentID *uuid.UUID `json:"student_id"`
	From      *string    `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To        *string    `json:"to" validate:"omitempty,datetime=2006-01-02"`
	WeekStart *string    `json:"week_start" validate:"omitempty,datetime=2006-01-02"`
}

var (
	ErrScopeConflict = errors.New("pick one scope: student_id, from/to, or week_start")
	ErrRangeUnpaired = errors.New("from and to must be given together")
	ErrRangeInverted = errors.New("from must not be after to")
)

// ToScope validates the combination and builds the pipeline scope.
func (r *ReconcileRequest) ToScope() (service.Scope, error) {
	shapes := 0
	if r.StudentID != nil {
		shapes++
	}
	if r.From != nil || r.To != nil {
		shapes++
	}
	if r.WeekStart != nil {
		shapes++
	}
	if shapes > 1 {
		return service.Scope{}, ErrScopeConflict
	}

	switch {
	case r.StudentID != nil:
		return service.StudentScope(*r.StudentID), nil

	case r.WeekStart != nil:
		day, err := time.Parse("2006-01-02", *r.WeekStart)
		if err != nil {
			return service.Scope{}, err
		}
		// snap to the Monday of that week
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return service.RangeScope(monday, monday.AddDate(0, 0, 6)), nil

	case r.From != nil || r.To != nil:
		if r.From == nil || r.To == nil {
			return service.Scope{}, ErrRangeUnpaired
		}
		from, err := time.Parse("2006-01-02", *r.From)
		if err != nil {
			return service.Scope{}, err
		}
		to, err := time.Parse("2006-01-02", *r.To)
		if err != nil {
			return service.Scope{}, err
		}
		if from.After(to) {
			return service.Scope{}, ErrRangeInverted
		}
		return service.RangeScope(from, to), nil

	default:
		return service.GlobalScope(), nil
	}
}
