package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/internal/models"
	"github.com/opencampus/timetable-api/internal/timetable"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

type viewAllocationReader interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.Allocation, error)
}

// ViewService projects stored allocations into rendered timetables: a fixed
// Monday-Saturday grid, axis/filter projection, and contiguous allocations
// merged into display blocks.
type ViewService struct {
	allocations viewAllocationReader
	grid        timetable.Grid
	projector   timetable.Projector
	merger      timetable.Merger
	detector    timetable.Detector
	logger      *zap.Logger
}

// NewViewService constructs a ViewService.
func NewViewService(allocations viewAllocationReader, grid timetable.Grid, merger timetable.Merger, logger *zap.Logger) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		allocations: allocations,
		grid:        grid,
		projector:   timetable.NewProjector(),
		merger:      merger,
		detector:    timetable.NewDetector(),
		logger:      logger,
	}
}

// Timetable renders the schedule through the requested projection.
func (s *ViewService) Timetable(ctx context.Context, scheduleID string, q dto.TimetableQuery) (*dto.TimetableResponse, error) {
	store, err := s.loadStore(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	axis := models.ViewAxis(q.Axis)
	if axis == "" {
		axis = models.ViewAll
	}
	projected := s.projector.Project(store, models.ViewQuery{
		Axis:     axis,
		Key:      q.Key,
		Building: q.Building,
		Room:     q.Room,
		Day:      q.Day,
		Search:   q.Search,
	})
	blocks := s.merger.Merge(projected)

	resp := &dto.TimetableResponse{
		ScheduleID: scheduleID,
		Days:       timetable.RenderDays,
		Slots:      slotResponses(s.grid.Slots()),
		Blocks:     blockResponses(blocks),
		Conflicts:  conflictResponses(s.scheduleConflicts(store)),
	}
	return resp, nil
}

// Conflicts lists every advisory conflict in the schedule, one entry per
// conflicting pair and category.
func (s *ViewService) Conflicts(ctx context.Context, scheduleID string) ([]dto.ConflictResponse, error) {
	store, err := s.loadStore(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return conflictResponses(s.scheduleConflicts(store)), nil
}

func (s *ViewService) loadStore(ctx context.Context, scheduleID string) (*timetable.Store, error) {
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
	return store, nil
}

// scheduleConflicts runs pairwise detection across the whole store. Each
// conflicting pair is reported once, from the side with the smaller id.
func (s *ViewService) scheduleConflicts(store *timetable.Store) []models.Conflict {
	var out []models.Conflict
	for _, alloc := range store.All() {
		for _, c := range s.detector.Check(store, alloc, alloc.ID) {
			if alloc.ID < c.WithAllocationID {
				out = append(out, c)
			}
		}
	}
	return out
}

func slotResponses(slots []timetable.Slot) []dto.SlotResponse {
	out := make([]dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, dto.SlotResponse{
			StartTime: timetable.FormatMinutes(slot.StartMinute),
			EndTime:   timetable.FormatMinutes(slot.EndMinute),
			Label:     slot.Label,
		})
	}
	return out
}

func blockResponses(blocks []models.Block) []dto.BlockResponse {
	out := make([]dto.BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, dto.BlockResponse{
			CourseCode:  block.CourseCode,
			CourseName:  block.CourseName,
			Section:     block.Section,
			Room:        block.Room,
			Building:    block.Building,
			Capacity:    block.Capacity,
			Day:         block.Day,
			TeacherName: block.TeacherName,
			Department:  block.Department,
			StartTime:   timetable.FormatMinutes(block.StartMinute),
			EndTime:     timetable.FormatMinutes(block.EndMinute),
			SourceIDs:   block.SourceIDs,
		})
	}
	return out
}
