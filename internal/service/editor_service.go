package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/internal/models"
	"github.com/opencampus/timetable-api/internal/timetable"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

type allocationRepository interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.Allocation, error)
	Insert(ctx context.Context, allocation *models.Allocation) error
	UpdateRange(ctx context.Context, id string, startMinute, endMinute int) error
	Delete(ctx context.Context, id string) error
	ReplaceForSchedule(ctx context.Context, scheduleID string, allocations []models.Allocation) error
}

type catalogReader interface {
	FindOffering(ctx context.Context, id string) (*models.ClassOffering, error)
	FindRoom(ctx context.Context, id string) (*models.Room, error)
}

// EditorService drives interactive timetable authoring. It keeps one live
// editing session per schedule, hydrated from the database on first touch,
// and persists every accepted mutation back through the allocation
// repository. All mutations for a schedule are serialized behind a single
// mutex, matching the single-editor workflow the UI enforces.
type EditorService struct {
	allocations      allocationRepository
	catalog          catalogReader
	grid             timetable.Grid
	defaultPlacement int
	validator        *validator.Validate
	logger           *zap.Logger
	metrics          *MetricsService

	mu       sync.Mutex
	sessions map[string]*timetable.Session
}

// NewEditorService constructs an EditorService. A nonpositive
// defaultPlacement falls back to timetable.DefaultPlacementMinutes.
func NewEditorService(allocations allocationRepository, catalog catalogReader, grid timetable.Grid, defaultPlacement int, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *EditorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		allocations:      allocations,
		catalog:          catalog,
		grid:             grid,
		defaultPlacement: defaultPlacement,
		validator:        validate,
		logger:           logger,
		metrics:          metrics,
		sessions:         make(map[string]*timetable.Session),
	}
}

// Place drops a class offering onto the grid. Conflicts never block the
// placement; they come back as advisory warnings for the caller to surface.
func (s *EditorService) Place(ctx context.Context, scheduleID string, req dto.PlaceRequest) (*dto.PlacementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
	}
	day, err := resolveSingleDay(req.Day)
	if err != nil {
		return nil, err
	}
	start, err := timetable.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	start = s.grid.AlignStart(start)
	if start < s.grid.StartMinute || start >= s.grid.LastSlotEnd() {
		return nil, appErrors.Clone(appErrors.ErrOutOfGrid,
			fmt.Sprintf("start %s falls outside the grid window %s", req.StartTime, timetable.FormatRange(s.grid.StartMinute, s.grid.LastSlotEnd())))
	}

	offering, err := s.catalog.FindOffering(ctx, req.ClassID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class offering")
	}
	var room models.Room
	if req.RoomID != "" {
		found, err := s.catalog.FindRoom(ctx, req.RoomID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
		}
		room = *found
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	result, err := sess.Place(id, *offering, room, day, start)
	if err != nil {
		return nil, err
	}
	if req.Duration > 0 {
		end := start + s.grid.Snap(req.Duration)
		if last := s.grid.LastSlotEnd(); end > last {
			end = last
		}
		result, err = sess.Resize(id, end)
		if err != nil {
			sess.Remove(id)
			return nil, err
		}
	}

	stored := result.Allocation
	stored.ScheduleID = scheduleID
	if err := s.allocations.Insert(ctx, &stored); err != nil {
		sess.Remove(id)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist allocation")
	}

	s.recordConflicts(result.Warnings)
	s.logger.Info("allocation placed",
		zap.String("scheduleId", scheduleID),
		zap.String("allocationId", id),
		zap.String("course", stored.CourseCode),
		zap.Int("conflicts", len(result.Warnings)))
	return placementResponse(scheduleID, result), nil
}

// Resize moves an allocation's end time, keeping the start fixed.
func (s *EditorService) Resize(ctx context.Context, scheduleID, id string, req dto.ResizeRequest) (*dto.PlacementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resize payload")
	}
	end, err := timetable.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	result, err := sess.Resize(id, end)
	if err != nil {
		return nil, err
	}
	if err := s.persistRangeLocked(ctx, scheduleID, result.Allocation); err != nil {
		return nil, err
	}
	s.recordConflicts(result.Warnings)
	return placementResponse(scheduleID, result), nil
}

// AdjustDuration grows or shrinks an allocation by whole minutes, subject to
// the same bounds as Resize.
func (s *EditorService) AdjustDuration(ctx context.Context, scheduleID, id string, req dto.AdjustDurationRequest) (*dto.PlacementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid adjustment payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	result, err := sess.AdjustDuration(id, req.DeltaMinutes)
	if err != nil {
		return nil, err
	}
	if err := s.persistRangeLocked(ctx, scheduleID, result.Allocation); err != nil {
		return nil, err
	}
	s.recordConflicts(result.Warnings)
	return placementResponse(scheduleID, result), nil
}

// Remove deletes an allocation. Unknown ids are tolerated so repeated removal
// requests stay idempotent.
func (s *EditorService) Remove(ctx context.Context, scheduleID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(ctx, scheduleID)
	if err != nil {
		return err
	}
	sess.Remove(id)
	if err := s.allocations.Delete(ctx, id); err != nil {
		delete(s.sessions, scheduleID)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete allocation")
	}
	return nil
}

// Conflicts re-runs detection for one allocation.
func (s *EditorService) Conflicts(ctx context.Context, scheduleID, id string) ([]dto.ConflictResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	conflicts, err := sess.Check(id)
	if err != nil {
		return nil, err
	}
	return conflictResponses(conflicts), nil
}

// Import atomically replaces the whole schedule with the provided rows,
// typically the output of an external generator run.
func (s *EditorService) Import(ctx context.Context, scheduleID string, req dto.ImportScheduleRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	allocations := make([]models.Allocation, 0, len(req.Allocations))
	for i, row := range req.Allocations {
		day, err := resolveSingleDay(row.Day)
		if err != nil {
			return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: %s", i, err.Error()))
		}
		start, end, err := timetable.ParseRange(row.StartTime + " - " + row.EndTime)
		if err != nil {
			return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: %s", i, err.Error()))
		}
		start = s.grid.AlignStart(start)
		end = s.grid.AlignEnd(end)
		offering, err := s.catalog.FindOffering(ctx, row.ClassID)
		if err != nil {
			if err == sql.ErrNoRows {
				return 0, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("row %d: class offering %s not found", i, row.ClassID))
			}
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class offering")
		}
		alloc := models.Allocation{
			ClassID:     offering.ID,
			CourseCode:  offering.CourseCode,
			CourseName:  offering.CourseName,
			Section:     offering.Section,
			TeacherName: offering.TeacherName,
			Day:         day,
			StartMinute: start,
			EndMinute:   end,
			Department:  offering.Department,
		}
		if row.RoomID != "" {
			room, err := s.catalog.FindRoom(ctx, row.RoomID)
			if err != nil {
				if err == sql.ErrNoRows {
					return 0, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("row %d: room %s not found", i, row.RoomID))
				}
				return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
			}
			alloc.RoomID = room.ID
			alloc.Room = room.Name
			alloc.Building = room.Building
			alloc.Capacity = room.Capacity
		}
		allocations = append(allocations, alloc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.allocations.ReplaceForSchedule(ctx, scheduleID, allocations); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import schedule")
	}
	delete(s.sessions, scheduleID)
	s.logger.Info("schedule imported", zap.String("scheduleId", scheduleID), zap.Int("allocations", len(allocations)))
	return len(allocations), nil
}

func (s *EditorService) sessionLocked(ctx context.Context, scheduleID string) (*timetable.Session, error) {
	if sess, ok := s.sessions[scheduleID]; ok {
		return sess, nil
	}
	rows, err := s.allocations.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	store := timetable.NewStore()
	for _, row := range rows {
		if err := store.Insert(row); err != nil {
			s.logger.Warn("skipping stored allocation with invalid range",
				zap.String("allocationId", row.ID), zap.Error(err))
		}
	}
	sess := timetable.NewSession(store, s.grid, s.defaultPlacement)
	s.sessions[scheduleID] = sess
	return sess, nil
}

func (s *EditorService) persistRangeLocked(ctx context.Context, scheduleID string, alloc models.Allocation) error {
	if err := s.allocations.UpdateRange(ctx, alloc.ID, alloc.StartMinute, alloc.EndMinute); err != nil {
		// Drop the cached session so the next read rehydrates from the
		// database instead of serving the unpersisted mutation.
		delete(s.sessions, scheduleID)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist allocation range")
	}
	return nil
}

func (s *EditorService) recordConflicts(conflicts []models.Conflict) {
	if s.metrics == nil {
		return
	}
	for _, c := range conflicts {
		s.metrics.ObserveConflict(c.Category)
	}
}

func resolveSingleDay(raw string) (string, error) {
	days := timetable.ExpandDayCode(raw)
	if len(days) != 1 || !timetable.CanonicalDay(days[0]) {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %q does not resolve to a single weekday", raw))
	}
	return days[0], nil
}

func placementResponse(scheduleID string, result *timetable.PlacementResult) *dto.PlacementResponse {
	alloc := allocationResponse(scheduleID, result.Allocation)
	return &dto.PlacementResponse{
		Allocation: alloc,
		Conflicts:  conflictResponses(result.Warnings),
	}
}

func allocationResponse(scheduleID string, alloc models.Allocation) dto.AllocationResponse {
	if alloc.ScheduleID != "" {
		scheduleID = alloc.ScheduleID
	}
	return dto.AllocationResponse{
		ID:          alloc.ID,
		ScheduleID:  scheduleID,
		ClassID:     alloc.ClassID,
		RoomID:      alloc.RoomID,
		CourseCode:  alloc.CourseCode,
		CourseName:  alloc.CourseName,
		Section:     alloc.Section,
		TeacherName: alloc.TeacherName,
		Day:         alloc.Day,
		StartTime:   timetable.FormatMinutes(alloc.StartMinute),
		EndTime:     timetable.FormatMinutes(alloc.EndMinute),
		Building:    alloc.Building,
		Room:        alloc.Room,
		Capacity:    alloc.Capacity,
		Department:  alloc.Department,
	}
}

func conflictResponses(conflicts []models.Conflict) []dto.ConflictResponse {
	out := make([]dto.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, dto.ConflictResponse{
			Category:         c.Category,
			WithAllocationID: c.WithAllocationID,
			Description:      c.Description,
		})
	}
	return out
}
