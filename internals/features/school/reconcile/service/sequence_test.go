// file: internals/features/school/reconcile/service/sequence_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	progressModel "edupath_backend/internals/features/school/progress/model"
)

func chainRecord(student, subject, topic uuid.UUID, date time.Time, period int) progressModel.LessonProgressModel {
	return progressModel.LessonProgressModel{
		LessonProgressID:            uuid.New(),
		LessonProgressStudentID:     student,
		LessonProgressSubjectID:     subject,
		LessonProgressLessonTopicID: topic,
		LessonProgressDate:          date,
		LessonProgressPeriodNumber:  period,
	}
}

func TestComputeSequenceAssignmentsSinglePeriod(t *testing.T) {
	rec := chainRecord(uuid.New(), uuid.New(), uuid.New(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 1)

	out := computeSequenceAssignments([]progressModel.LessonProgressModel{rec})
	require.Len(t, out, 1)
	assert.Equal(t, rec.LessonProgressID, out[0].ID)
	assert.Equal(t, 1, out[0].Sequence)
	assert.Equal(t, 1, out[0].Total)
	assert.Empty(t, out[0].LinkedIDs)
}

func TestComputeSequenceAssignmentsOrdersByDateThenPeriod(t *testing.T) {
	student, subject, topic := uuid.New(), uuid.New(), uuid.New()
	mon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	// deliberately shuffled input
	third := chainRecord(student, subject, topic, wed, 2)
	first := chainRecord(student, subject, topic, mon, 3)
	second := chainRecord(student, subject, topic, wed, 1)

	out := computeSequenceAssignments([]progressModel.LessonProgressModel{third, first, second})
	require.Len(t, out, 3)

	bySeq := map[int]SequenceAssignment{}
	for _, asg := range out {
		bySeq[asg.Sequence] = asg
	}
	assert.Equal(t, first.LessonProgressID, bySeq[1].ID)
	assert.Equal(t, second.LessonProgressID, bySeq[2].ID)
	assert.Equal(t, third.LessonProgressID, bySeq[3].ID)

	for _, asg := range out {
		assert.Equal(t, 3, asg.Total)
		assert.Len(t, asg.LinkedIDs, 2)
		assert.NotContains(t, asg.LinkedIDs, asg.ID, "a record never links to itself")
	}
}

func TestComputeSequenceAssignmentsSeparatesChains(t *testing.T) {
	student, subject := uuid.New(), uuid.New()
	mon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	topicA, topicB := uuid.New(), uuid.New()

	a1 := chainRecord(student, subject, topicA, mon, 1)
	a2 := chainRecord(student, subject, topicA, mon, 2)
	b1 := chainRecord(student, subject, topicB, mon, 3)

	out := computeSequenceAssignments([]progressModel.LessonProgressModel{a1, a2, b1})
	require.Len(t, out, 3)

	byID := map[uuid.UUID]SequenceAssignment{}
	for _, asg := range out {
		byID[asg.ID] = asg
	}
	assert.Equal(t, 2, byID[a1.LessonProgressID].Total)
	assert.Equal(t, 2, byID[a2.LessonProgressID].Total)
	assert.Equal(t, 1, byID[b1.LessonProgressID].Total)
	assert.Equal(t, 1, byID[b1.LessonProgressID].Sequence)
	assert.Empty(t, byID[b1.LessonProgressID].LinkedIDs)
}

func TestSameLinkedIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.True(t, sameLinkedIDs(nil, nil))
	assert.True(t, sameLinkedIDs(datatypes.JSON(`[]`), nil))

	raw, err := marshalLinkedIDs([]uuid.UUID{a, b})
	require.NoError(t, err)
	assert.True(t, sameLinkedIDs(raw, []uuid.UUID{b, a}), "order must not matter")
	assert.False(t, sameLinkedIDs(raw, []uuid.UUID{a}))
	assert.False(t, sameLinkedIDs(raw, []uuid.UUID{a, uuid.New()}))
	assert.False(t, sameLinkedIDs(nil, []uuid.UUID{a}))
}

func TestMarshalLinkedIDsEmpty(t *testing.T) {
	raw, err := marshalLinkedIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}
