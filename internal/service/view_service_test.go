package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/internal/models"
	"github.com/opencampus/timetable-api/internal/timetable"
)

func seedViewRepo() *allocationRepoStub {
	repo := newAllocationRepoStub()
	seed := []models.Allocation{
		{ID: "a1", ScheduleID: "sched-1", RoomID: "room-1", Room: "R101", Building: "Main", CourseCode: "CS101", CourseName: "Intro to Computing", Section: "BSCS-1A", TeacherName: "J. Cruz", Day: "Monday", StartMinute: 540, EndMinute: 570},
		{ID: "a2", ScheduleID: "sched-1", RoomID: "room-1", Room: "R101", Building: "Main", CourseCode: "CS101", CourseName: "Intro to Computing", Section: "BSCS-1A", TeacherName: "J. Cruz", Day: "Monday", StartMinute: 570, EndMinute: 600},
		{ID: "a3", ScheduleID: "sched-1", RoomID: "room-2", Room: "R202", Building: "Annex", CourseCode: "CS205", CourseName: "Data Structures", Section: "BSCS-2B", TeacherName: "M. Reyes", Day: "Tuesday", StartMinute: 600, EndMinute: 660},
	}
	for _, alloc := range seed {
		repo.items[alloc.ID] = alloc
	}
	return repo
}

func newViewForTest(repo *allocationRepoStub) *ViewService {
	return NewViewService(repo, testGrid(), timetable.NewMerger(0), zap.NewNop())
}

func TestViewServiceTimetableMergesBlocks(t *testing.T) {
	svc := newViewForTest(seedViewRepo())

	view, err := svc.Timetable(context.Background(), "sched-1", dto.TimetableQuery{})
	require.NoError(t, err)

	assert.Equal(t, "sched-1", view.ScheduleID)
	assert.Equal(t, timetable.RenderDays, view.Days)
	assert.Len(t, view.Slots, 28)
	require.Len(t, view.Blocks, 2)

	// a1 and a2 are contiguous same-course rows and merge into one block.
	assert.Equal(t, "CS101", view.Blocks[0].CourseCode)
	assert.Equal(t, "09:00", view.Blocks[0].StartTime)
	assert.Equal(t, "10:00", view.Blocks[0].EndTime)
	assert.ElementsMatch(t, []string{"a1", "a2"}, view.Blocks[0].SourceIDs)
	assert.Empty(t, view.Conflicts)
}

func TestViewServiceTimetableRoomAxis(t *testing.T) {
	svc := newViewForTest(seedViewRepo())

	view, err := svc.Timetable(context.Background(), "sched-1", dto.TimetableQuery{Axis: "room", Key: "room-2"})
	require.NoError(t, err)
	require.Len(t, view.Blocks, 1)
	assert.Equal(t, "CS205", view.Blocks[0].CourseCode)
	assert.Equal(t, "R202", view.Blocks[0].Room)
}

func TestViewServiceTimetableSearchFilter(t *testing.T) {
	svc := newViewForTest(seedViewRepo())

	view, err := svc.Timetable(context.Background(), "sched-1", dto.TimetableQuery{Search: "reyes"})
	require.NoError(t, err)
	require.Len(t, view.Blocks, 1)
	assert.Equal(t, "M. Reyes", view.Blocks[0].TeacherName)
}

func TestViewServiceConflictsReportedOncePerPair(t *testing.T) {
	repo := seedViewRepo()
	// Same room, same day, overlapping with a1. Distinct teacher and
	// section keep the pair to a single ROOM conflict.
	repo.items["a4"] = models.Allocation{
		ID: "a4", ScheduleID: "sched-1", RoomID: "room-1", Room: "R101", Building: "Main",
		CourseCode: "GE3", CourseName: "Ethics", Section: "BSIT-1C", TeacherName: "A. Santos",
		Day: "Monday", StartMinute: 540, EndMinute: 600,
	}
	svc := newViewForTest(repo)

	conflicts, err := svc.Conflicts(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	for _, c := range conflicts {
		assert.Equal(t, models.ConflictRoom, c.Category)
	}
}

func TestViewServiceEmptySchedule(t *testing.T) {
	svc := newViewForTest(newAllocationRepoStub())

	view, err := svc.Timetable(context.Background(), "sched-9", dto.TimetableQuery{})
	require.NoError(t, err)
	assert.Empty(t, view.Blocks)
	assert.Empty(t, view.Conflicts)
	assert.Len(t, view.Slots, 28)
}
