package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlog/classlog-backend/internal/model"
)

func TestMergeAttendanceRetargetsFreeDates(t *testing.T) {
	canon, dup := oid(1), oid(2)
	attendances := newMemAttendanceStore(
		model.Attendance{ID: oid(10), ClassroomID: dup, Date: "2024-06-03"},
		model.Attendance{ID: oid(11), ClassroomID: dup, Date: "2024-06-04"},
	)
	e := newTestEngine(testStores{attendances: attendances})

	var stats AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &stats))

	assert.Equal(t, AttendanceStats{Retargeted: 2}, stats)
	// Retargeting preserves document identity.
	assert.Equal(t, canon, attendances.docs[oid(10)].ClassroomID)
	assert.Equal(t, canon, attendances.docs[oid(11)].ClassroomID)

	remaining, err := attendances.CountByClassroom(context.Background(), dup)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestMergeAttendanceConflictNewerDuplicateWins(t *testing.T) {
	canon, dup := oid(1), oid(2)
	older := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)

	dupPeriods := []model.Period{{Number: 1, Subject: "Maths", AbsentRolls: []string{"14", "27"}}}
	attendances := newMemAttendanceStore(
		model.Attendance{ID: oid(10), ClassroomID: canon, Date: "2024-06-03", UpdatedAt: older,
			Periods: []model.Period{{Number: 1, Subject: "Maths"}}},
		model.Attendance{ID: oid(11), ClassroomID: dup, Date: "2024-06-03", UpdatedAt: newer, Periods: dupPeriods},
	)
	e := newTestEngine(testStores{attendances: attendances})

	var stats AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &stats))

	assert.Equal(t, AttendanceStats{ConflictResolved: 1}, stats)

	// The canonical document survives with the winner's periods and timestamp.
	merged := attendances.docs[oid(10)]
	assert.Equal(t, dupPeriods, merged.Periods)
	assert.Equal(t, newer, merged.UpdatedAt)

	_, stillThere := attendances.docs[oid(11)]
	assert.False(t, stillThere)
}

func TestMergeAttendanceConflictNewerCanonicalDiscards(t *testing.T) {
	canon, dup := oid(1), oid(2)
	older := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	canonPeriods := []model.Period{{Number: 2, Subject: "Physics"}}
	attendances := newMemAttendanceStore(
		model.Attendance{ID: oid(10), ClassroomID: canon, Date: "2024-06-03", UpdatedAt: newer, Periods: canonPeriods},
		model.Attendance{ID: oid(11), ClassroomID: dup, Date: "2024-06-03", UpdatedAt: older},
	)
	e := newTestEngine(testStores{attendances: attendances})

	var stats AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &stats))

	assert.Equal(t, AttendanceStats{Discarded: 1}, stats)
	assert.Equal(t, canonPeriods, attendances.docs[oid(10)].Periods)
	assert.Equal(t, newer, attendances.docs[oid(10)].UpdatedAt)
	_, stillThere := attendances.docs[oid(11)]
	assert.False(t, stillThere)
}

// Equal update timestamps keep the canonical side.
func TestMergeAttendanceConflictEqualTimestampsKeepCanonical(t *testing.T) {
	canon, dup := oid(1), oid(2)
	ts := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	canonPeriods := []model.Period{{Number: 1, Subject: "Maths"}}
	attendances := newMemAttendanceStore(
		model.Attendance{ID: oid(10), ClassroomID: canon, Date: "2024-06-03", UpdatedAt: ts, Periods: canonPeriods},
		model.Attendance{ID: oid(11), ClassroomID: dup, Date: "2024-06-03", UpdatedAt: ts,
			Periods: []model.Period{{Number: 1, Subject: "History"}}},
	)
	e := newTestEngine(testStores{attendances: attendances})

	var stats AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &stats))

	assert.Equal(t, AttendanceStats{Discarded: 1}, stats)
	assert.Equal(t, canonPeriods, attendances.docs[oid(10)].Periods)
}

// A second pass over an already-drained duplicate is a no-op.
func TestMergeAttendanceIdempotent(t *testing.T) {
	canon, dup := oid(1), oid(2)
	attendances := newMemAttendanceStore(
		model.Attendance{ID: oid(10), ClassroomID: dup, Date: "2024-06-03"},
	)
	e := newTestEngine(testStores{attendances: attendances})

	var first AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &first))
	assert.Equal(t, AttendanceStats{Retargeted: 1}, first)

	var second AttendanceStats
	require.NoError(t, e.mergeAttendance(context.Background(), dup, canon, &second))
	assert.Equal(t, AttendanceStats{}, second)
}
