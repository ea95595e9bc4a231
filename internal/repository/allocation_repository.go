package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/opencampus/timetable-api/internal/models"
)

// QueryObserver receives per-query timings, satisfied by the metrics service.
// A nil observer disables instrumentation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

func observeQuery(observer QueryObserver, label string, started time.Time) {
	if observer != nil {
		observer.ObserveDBQuery(label, time.Since(started))
	}
}

// AllocationRepository provides persistence for placed allocations.
type AllocationRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewAllocationRepository creates a new allocation repository.
func NewAllocationRepository(db *sqlx.DB, observer QueryObserver) *AllocationRepository {
	return &AllocationRepository{db: db, observer: observer}
}

const allocationColumns = "id, schedule_id, class_id, room_id, course_code, course_name, section, teacher_name, day_of_week, start_minute, end_minute, building, room, capacity, department, created_at, updated_at"

// ListBySchedule returns every allocation stored for a schedule, ordered for
// stable timetable rendering.
func (r *AllocationRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations WHERE schedule_id = $1 ORDER BY day_of_week, start_minute, id", allocationColumns)
	defer observeQuery(r.observer, "allocations.list_by_schedule", time.Now())
	var allocations []models.Allocation
	if err := r.db.SelectContext(ctx, &allocations, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocations, nil
}

// FindByID loads a single allocation.
func (r *AllocationRepository) FindByID(ctx context.Context, id string) (*models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations WHERE id = $1", allocationColumns)
	defer observeQuery(r.observer, "allocations.find_by_id", time.Now())
	var allocation models.Allocation
	if err := r.db.GetContext(ctx, &allocation, query, id); err != nil {
		return nil, err
	}
	return &allocation, nil
}

// Insert stores a new allocation, assigning id and timestamps when absent.
func (r *AllocationRepository) Insert(ctx context.Context, allocation *models.Allocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if allocation.CreatedAt.IsZero() {
		allocation.CreatedAt = now
	}
	allocation.UpdatedAt = now

	query := `INSERT INTO allocations (id, schedule_id, class_id, room_id, course_code, course_name, section, teacher_name, day_of_week, start_minute, end_minute, building, room, capacity, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	defer observeQuery(r.observer, "allocations.insert", time.Now())
	if _, err := r.db.ExecContext(ctx, query,
		allocation.ID, allocation.ScheduleID, allocation.ClassID, allocation.RoomID,
		allocation.CourseCode, allocation.CourseName, allocation.Section, allocation.TeacherName,
		allocation.Day, allocation.StartMinute, allocation.EndMinute,
		allocation.Building, allocation.Room, allocation.Capacity, allocation.Department,
		allocation.CreatedAt, allocation.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// UpdateRange persists a resized time range.
func (r *AllocationRepository) UpdateRange(ctx context.Context, id string, startMinute, endMinute int) error {
	query := "UPDATE allocations SET start_minute = $2, end_minute = $3, updated_at = $4 WHERE id = $1"
	defer observeQuery(r.observer, "allocations.update_range", time.Now())
	if _, err := r.db.ExecContext(ctx, query, id, startMinute, endMinute, time.Now().UTC()); err != nil {
		return fmt.Errorf("update allocation range: %w", err)
	}
	return nil
}

// Delete removes an allocation by id.
func (r *AllocationRepository) Delete(ctx context.Context, id string) error {
	defer observeQuery(r.observer, "allocations.delete", time.Now())
	if _, err := r.db.ExecContext(ctx, "DELETE FROM allocations WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	return nil
}

// ReplaceForSchedule atomically swaps a schedule's allocations, used by bulk
// import of generated schedules.
func (r *AllocationRepository) ReplaceForSchedule(ctx context.Context, scheduleID string, allocations []models.Allocation) error {
	defer observeQuery(r.observer, "allocations.replace_for_schedule", time.Now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM allocations WHERE schedule_id = $1", scheduleID); err != nil {
		return fmt.Errorf("clear schedule allocations: %w", err)
	}

	if len(allocations) > 0 {
		now := time.Now().UTC()
		values := make([]string, 0, len(allocations))
		args := make([]interface{}, 0, len(allocations)*17)
		for i := range allocations {
			alloc := &allocations[i]
			if alloc.ID == "" {
				alloc.ID = uuid.NewString()
			}
			alloc.ScheduleID = scheduleID
			if alloc.CreatedAt.IsZero() {
				alloc.CreatedAt = now
			}
			alloc.UpdatedAt = now

			base := i * 17
			placeholders := make([]string, 17)
			for p := 0; p < 17; p++ {
				placeholders[p] = fmt.Sprintf("$%d", base+p+1)
			}
			values = append(values, "("+strings.Join(placeholders, ", ")+")")
			args = append(args,
				alloc.ID, alloc.ScheduleID, alloc.ClassID, alloc.RoomID,
				alloc.CourseCode, alloc.CourseName, alloc.Section, alloc.TeacherName,
				alloc.Day, alloc.StartMinute, alloc.EndMinute,
				alloc.Building, alloc.Room, alloc.Capacity, alloc.Department,
				alloc.CreatedAt, alloc.UpdatedAt,
			)
		}
		query := fmt.Sprintf("INSERT INTO allocations (%s) VALUES %s", allocationColumns, strings.Join(values, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("bulk insert allocations: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}
