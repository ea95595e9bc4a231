package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/timetable-api/internal/models"
)

func categories(conflicts []models.Conflict) []string {
	out := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, c.Category)
	}
	return out
}

func TestDetectorSharedBoundaryNeverConflicts(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	candidate := alloc("a2", "CS205", "B", "R101", "A. Reyes", Monday, 10*60, 11*60)
	assert.Empty(t, NewDetector().Check(store, candidate, ""))
}

func TestDetectorRoomConflictScenario(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60+30)))

	candidate := alloc("a2", "CS205", "B", "R101", "A. Reyes", Monday, 10*60, 11*60)
	conflicts := NewDetector().Check(store, candidate, "")
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoom, conflicts[0].Category)
	assert.Equal(t, "a1", conflicts[0].WithAllocationID)
}

func TestDetectorTeacherConflictAcrossRooms(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "RoomA", "J. Cruz", Tuesday, 13*60, 14*60)))

	candidate := alloc("a2", "CS301", "C", "RoomB", "J. Cruz", Tuesday, 13*60+30, 14*60+30)
	conflicts := NewDetector().Check(store, candidate, "")
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTeacher, conflicts[0].Category)
}

func TestDetectorSectionConflict(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "BSCS-1A", "R101", "J. Cruz", Friday, 8*60, 9*60)))

	candidate := alloc("a2", "MATH101", "BSCS-1A", "R202", "A. Reyes", Friday, 8*60+30, 9*60+30)
	conflicts := NewDetector().Check(store, candidate, "")
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictSection, conflicts[0].Category)
}

func TestDetectorSinglePairMultipleCategories(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	candidate := alloc("a2", "CS101", "A", "R101", "J. Cruz", Monday, 9*60+30, 10*60+30)
	conflicts := NewDetector().Check(store, candidate, "")
	assert.ElementsMatch(t,
		[]string{models.ConflictRoom, models.ConflictTeacher, models.ConflictSection},
		categories(conflicts))
}

func TestDetectorPlaceholderTeacherExempt(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "TBD", Monday, 9*60, 10*60)))
	require.NoError(t, store.Insert(alloc("a2", "CS102", "B", "R102", "", Monday, 9*60, 10*60)))

	candidate := alloc("a3", "CS103", "C", "R103", "tbd", Monday, 9*60, 10*60)
	assert.Empty(t, NewDetector().Check(store, candidate, ""))

	unnamed := alloc("a4", "CS104", "D", "R104", "", Monday, 9*60, 10*60)
	assert.Empty(t, NewDetector().Check(store, unnamed, ""))
}

func TestDetectorIgnoreIDExcludesSelf(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	// Re-checking the stored allocation against itself during a resize.
	resized := alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 11*60)
	assert.Empty(t, NewDetector().Check(store, resized, "a1"))
}

func TestDetectorDifferentDaysNeverConflict(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	candidate := alloc("a2", "CS101", "A", "R101", "J. Cruz", Tuesday, 9*60, 10*60)
	assert.Empty(t, NewDetector().Check(store, candidate, ""))
}

func TestDetectorOverlapMatchesRoomConflict(t *testing.T) {
	// For allocations sharing day and room, Overlaps and a ROOM conflict
	// report must agree.
	cases := []struct {
		name         string
		aStart, aEnd int
		bStart, bEnd int
	}{
		{"identical", 9 * 60, 10 * 60, 9 * 60, 10 * 60},
		{"contained", 9 * 60, 12 * 60, 10 * 60, 11 * 60},
		{"partial", 9 * 60, 10 * 60, 9*60 + 30, 10*60 + 30},
		{"boundary", 9 * 60, 10 * 60, 10 * 60, 11 * 60},
		{"disjoint", 8 * 60, 9 * 60, 12 * 60, 13 * 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, tc.aStart, tc.aEnd)))
			candidate := alloc("a2", "CS205", "B", "R101", "A. Reyes", Monday, tc.bStart, tc.bEnd)
			conflicts := NewDetector().Check(store, candidate, "")
			if Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd) {
				assert.NotEmpty(t, conflicts)
			} else {
				assert.Empty(t, conflicts)
			}
		})
	}
}
