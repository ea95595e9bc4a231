package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/timetable-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func allocationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "schedule_id", "class_id", "room_id", "course_code", "course_name",
		"section", "teacher_name", "day_of_week", "start_minute", "end_minute",
		"building", "room", "capacity", "department", "created_at", "updated_at",
	})
}

func TestAllocationRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db, nil)

	rows := allocationRows().
		AddRow("a1", "sched-1", "off-1", "room-1", "CS101", "Intro to Computing",
			"BSCS-1A", "J. Cruz", "Monday", 540, 630, "Main", "R101", 40, "CS Dept", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, schedule_id, class_id, room_id, course_code, course_name, section, teacher_name, day_of_week, start_minute, end_minute, building, room, capacity, department, created_at, updated_at FROM allocations WHERE schedule_id = $1 ORDER BY day_of_week, start_minute, id")).
		WithArgs("sched-1").
		WillReturnRows(rows)

	list, err := repo.ListBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CS101", list[0].CourseCode)
	assert.Equal(t, 540, list[0].StartMinute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryInsertAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db, nil)

	mock.ExpectExec("INSERT INTO allocations").
		WithArgs(sqlmock.AnyArg(), "sched-1", "off-1", "room-1", "CS101", "Intro to Computing",
			"BSCS-1A", "J. Cruz", "Monday", 540, 630, "Main", "R101", 40, "CS Dept",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	allocation := &models.Allocation{
		ScheduleID:  "sched-1",
		ClassID:     "off-1",
		RoomID:      "room-1",
		CourseCode:  "CS101",
		CourseName:  "Intro to Computing",
		Section:     "BSCS-1A",
		TeacherName: "J. Cruz",
		Day:         "Monday",
		StartMinute: 540,
		EndMinute:   630,
		Building:    "Main",
		Room:        "R101",
		Capacity:    40,
		Department:  "CS Dept",
	}
	require.NoError(t, repo.Insert(context.Background(), allocation))
	assert.NotEmpty(t, allocation.ID)
	assert.False(t, allocation.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryUpdateRangeAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db, nil)

	mock.ExpectExec("UPDATE allocations SET start_minute").
		WithArgs("a1", 540, 660, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.UpdateRange(context.Background(), "a1", 540, 660))

	mock.ExpectExec("DELETE FROM allocations WHERE id").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryReplaceForSchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM allocations WHERE schedule_id").
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO allocations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	allocations := []models.Allocation{{
		ClassID:     "off-1",
		RoomID:      "room-1",
		CourseCode:  "CS101",
		Section:     "BSCS-1A",
		Day:         "Monday",
		StartMinute: 540,
		EndMinute:   630,
	}}
	require.NoError(t, repo.ReplaceForSchedule(context.Background(), "sched-1", allocations))
	assert.Equal(t, "sched-1", allocations[0].ScheduleID)
	assert.NotEmpty(t, allocations[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type queryObserverStub struct {
	labels []string
}

func (o *queryObserverStub) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestAllocationRepositoryObservesQueryTimings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	observer := &queryObserverStub{}
	repo := NewAllocationRepository(db, observer)

	mock.ExpectQuery("SELECT .+ FROM allocations WHERE schedule_id").
		WithArgs("sched-1").
		WillReturnRows(allocationRows())
	_, err := repo.ListBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM allocations WHERE id").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "a1"))

	assert.Equal(t, []string{"allocations.list_by_schedule", "allocations.delete"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryReplaceForScheduleEmptyClears(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM allocations WHERE schedule_id").
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceForSchedule(context.Background(), "sched-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
