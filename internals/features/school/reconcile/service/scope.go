// file: internals/features/school/reconcile/service/scope.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope bounds a pipeline run: one student's full history, a date range
// (typically one week), or everything. Zero value = global.
type Scope struct {
	StudentID *uuid.UUID
	From      *time.Time // inclusive
	To        *time.Time // inclusive
}

func StudentScope(studentID uuid.UUID) Scope {
	return Scope{StudentID: &studentID}
}

func RangeScope(from, to time.Time) Scope {
	return Scope{From: &from, To: &to}
}

func GlobalScope() Scope {
	return Scope{}
}

func (sc Scope) IsGlobal() bool {
	return sc.StudentID == nil && sc.From == nil && sc.To == nil
}

func (sc Scope) String() string {
	switch {
	case sc.StudentID != nil:
		return fmt.Sprintf("student=%s", *sc.StudentID)
	case sc.From != nil && sc.To != nil:
		return fmt.Sprintf("range=%s..%s", sc.From.Format("2006-01-02"), sc.To.Format("2006-01-02"))
	default:
		return "global"
	}
}

// apply narrows a GORM query using the given student/date column names.
func (sc Scope) apply(db *gorm.DB, studentCol, dateCol string) *gorm.DB {
	if sc.StudentID != nil {
		db = db.Where(studentCol+" = ?", *sc.StudentID)
	}
	if sc.From != nil {
		db = db.Where(dateCol+" >= ?", *sc.From)
	}
	if sc.To != nil {
		db = db.Where(dateCol+" <= ?", *sc.To)
	}
	return db
}

// cond renders the scope as a raw SQL fragment for the UPDATE ... FROM
// passes, with the alias-qualified student/date columns.
func (sc Scope) cond(studentCol, dateCol string) (string, []interface{}) {
	conds := "1=1"
	args := []interface{}{}
	if sc.StudentID != nil {
		conds += " AND " + studentCol + " = ?"
		args = append(args, *sc.StudentID)
	}
	if sc.From != nil {
		conds += " AND " + dateCol + " >= ?"
		args = append(args, *sc.From)
	}
	if sc.To != nil {
		conds += " AND " + dateCol + " <= ?"
		args = append(args, *sc.To)
	}
	return conds, args
}
