// file: internals/features/school/reconcile/service/sequence.go
package service

import (
	"sort"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	progressModel "edupath_backend/internals/features/school/progress/model"
)

// SequenceAssignment is the desired multi-period metadata for one record:
// its 1-based position in the same-topic chain, the chain length, and the
// ids of its siblings (empty for single-period chains).
type SequenceAssignment struct {
	ID        uuid.UUID
	Sequence  int
	Total     int
	LinkedIDs []uuid.UUID
}

type chainKey struct {
	student uuid.UUID
	subject uuid.UUID
	topic   uuid.UUID
}

// computeSequenceAssignments partitions records by (student, subject, topic)
// and numbers each chain by (date, period_number, created_at). Output order
// follows chain order, so updates stay deterministic.
func computeSequenceAssignments(records []progressModel.LessonProgressModel) []SequenceAssignment {
	chains := map[chainKey][]progressModel.LessonProgressModel{}
	var keys []chainKey
	for _, rec := range records {
		key := chainKey{rec.LessonProgressStudentID, rec.LessonProgressSubjectID, rec.LessonProgressLessonTopicID}
		if _, ok := chains[key]; !ok {
			keys = append(keys, key)
		}
		chains[key] = append(chains[key], rec)
	}

	var out []SequenceAssignment
	for _, key := range keys {
		chain := chains[key]
		sort.SliceStable(chain, func(i, j int) bool {
			a, b := chain[i], chain[j]
			if !a.LessonProgressDate.Equal(b.LessonProgressDate) {
				return a.LessonProgressDate.Before(b.LessonProgressDate)
			}
			if a.LessonProgressPeriodNumber != b.LessonProgressPeriodNumber {
				return a.LessonProgressPeriodNumber < b.LessonProgressPeriodNumber
			}
			return a.LessonProgressCreatedAt.Before(b.LessonProgressCreatedAt)
		})

		total := len(chain)
		for i, rec := range chain {
			asg := SequenceAssignment{
				ID:       rec.LessonProgressID,
				Sequence: i + 1,
				Total:    total,
			}
			if total > 1 {
				for _, sib := range chain {
					if sib.LessonProgressID != rec.LessonProgressID {
						asg.LinkedIDs = append(asg.LinkedIDs, sib.LessonProgressID)
					}
				}
			}
			out = append(out, asg)
		}
	}
	return out
}

func marshalLinkedIDs(ids []uuid.UUID) (datatypes.JSON, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw, err := sonic.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// sameLinkedIDs compares a stored jsonb value against the desired sibling
// set, order-insensitive. A nil/empty stored value equals an empty set.
func sameLinkedIDs(stored datatypes.JSON, want []uuid.UUID) bool {
	var have []uuid.UUID
	if len(stored) > 0 {
		if err := sonic.Unmarshal([]byte(stored), &have); err != nil {
			return false
		}
	}
	if len(have) != len(want) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(have))
	for _, id := range have {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			return false
		}
	}
	return true
}
