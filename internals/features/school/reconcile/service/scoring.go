// file: internals/features/school/reconcile/service/scoring.go
package service

import "math"

// NormalizeScore converts a raw submission score to the 0-100 scale stored
// on progress records, rounded to two decimals. A non-positive total means
// the submission is unscored and yields nil. Mirrors the SQL CASE used by
// the set-based submission pass.
func NormalizeScore(score, totalMarks float64) *float64 {
	if totalMarks <= 0 {
		return nil
	}
	v := math.Round(score/totalMarks*100*100) / 100
	return &v
}
