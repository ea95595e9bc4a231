package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/timetable-api/internal/models"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

func alloc(id, course, section, room, teacher, day string, start, end int) models.Allocation {
	return models.Allocation{
		ID:          id,
		RoomID:      room,
		Room:        room,
		CourseCode:  course,
		Section:     section,
		TeacherName: teacher,
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
	}
}

func TestStoreInsertRejectsInvalidRange(t *testing.T) {
	store := NewStore()
	err := store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 10*60, 10*60))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidTimeRange.Code, appErr.Code)
	assert.Equal(t, 0, store.Len())

	err = store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 11*60, 10*60))
	require.Error(t, err)
}

func TestStoreIndices(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))
	require.NoError(t, store.Insert(alloc("a2", "CS205", "B", "R102", "A. Reyes", Monday, 9*60, 10*60)))
	require.NoError(t, store.Insert(alloc("a3", "CS101", "A", "R101", "J. Cruz", Wednesday, 9*60, 10*60)))

	assert.Len(t, store.ByDay(Monday), 2)
	assert.Len(t, store.ByRoom("R101"), 2)
	assert.Len(t, store.ByTeacher("J. Cruz"), 2)
	assert.Len(t, store.BySection("B"), 1)
	assert.Len(t, store.ByCourse("CS101"), 2)
	assert.Empty(t, store.ByDay(Friday))
}

func TestStoreRemoveRestoresPriorContent(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))
	before := store.All()

	require.NoError(t, store.Insert(alloc("a2", "CS205", "B", "R102", "A. Reyes", Tuesday, 13*60, 14*60)))
	store.Remove("a2")

	assert.Equal(t, before, store.All())
	assert.Empty(t, store.ByDay(Tuesday))
	assert.Empty(t, store.ByRoom("R102"))

	// Removing an unknown id is a no-op.
	store.Remove("missing")
	assert.Equal(t, before, store.All())
}

func TestStoreUpdateReindexes(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	require.NoError(t, store.Update("a1", func(a *models.Allocation) {
		a.Day = Thursday
		a.RoomID = "R105"
	}))

	assert.Empty(t, store.ByDay(Monday))
	assert.Len(t, store.ByDay(Thursday), 1)
	assert.Empty(t, store.ByRoom("R101"))
	assert.Len(t, store.ByRoom("R105"), 1)
}

func TestStoreUpdateRejectsInvalidRange(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	err := store.Update("a1", func(a *models.Allocation) {
		a.EndMinute = a.StartMinute
	})
	require.Error(t, err)

	// The stored allocation is untouched after a rejected update.
	got, ok := store.Get("a1")
	require.True(t, ok)
	assert.Equal(t, 10*60, got.EndMinute)
}

func TestStoreFilterIsRestartable(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))
	require.NoError(t, store.Insert(alloc("a2", "CS205", "B", "R101", "A. Reyes", Monday, 10*60, 11*60)))

	mondays := func(a models.Allocation) bool { return a.Day == Monday }
	assert.Len(t, store.Filter(mondays), 2)

	store.Remove("a2")
	assert.Len(t, store.Filter(mondays), 1)
}

func TestStoreAllIsSorted(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(alloc("a2", "CS205", "B", "R102", "A. Reyes", Wednesday, 8*60, 9*60)))
	require.NoError(t, store.Insert(alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 10*60, 11*60)))
	require.NoError(t, store.Insert(alloc("a3", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60)))

	all := store.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a3", all[0].ID)
	assert.Equal(t, "a1", all[1].ID)
	assert.Equal(t, "a2", all[2].ID)
}
