package timetable

import (
	"fmt"

	"github.com/opencampus/timetable-api/internal/models"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

// DefaultPlacementMinutes caps the default duration of a fresh placement.
const DefaultPlacementMinutes = 90

// Session drives interactive authoring over a store: placement, resize,
// duration adjustment and removal, re-checking conflicts after each
// mutation. Conflicts are advisory; a supervisor overriding a warning is a
// legitimate action, so placement succeeds whenever the range invariant
// holds.
type Session struct {
	store            *Store
	detector         Detector
	grid             Grid
	defaultPlacement int
}

// PlacementResult pairs a mutated allocation with its advisory warnings.
type PlacementResult struct {
	Allocation models.Allocation `json:"allocation"`
	Warnings   []models.Conflict `json:"warnings,omitempty"`
}

// NewSession builds a session over the given store and grid. A nonpositive
// defaultPlacement falls back to DefaultPlacementMinutes.
func NewSession(store *Store, grid Grid, defaultPlacement int) *Session {
	if store == nil {
		store = NewStore()
	}
	if defaultPlacement <= 0 {
		defaultPlacement = DefaultPlacementMinutes
	}
	return &Session{store: store, detector: NewDetector(), grid: grid, defaultPlacement: defaultPlacement}
}

// Store exposes the underlying allocation store for read-side projection.
func (s *Session) Store() *Store {
	return s.store
}

// Place creates an allocation for the offering at the given day and slot
// start. The start is snapped down to the grid granularity so stored minute
// values always sit on slot boundaries. The default duration is the
// offering's weekly hours capped at the session default, snapped the same
// way; conflicts come back as warnings.
func (s *Session) Place(id string, offering models.ClassOffering, room models.Room, day string, slotStart int) (*PlacementResult, error) {
	slotStart = s.grid.AlignStart(slotStart)
	duration := s.defaultDuration(offering)
	end := slotStart + duration
	if last := s.grid.LastSlotEnd(); end > last {
		end = last
	}

	alloc := models.Allocation{
		ID:          id,
		ClassID:     offering.ID,
		RoomID:      room.ID,
		CourseCode:  offering.CourseCode,
		CourseName:  offering.CourseName,
		Section:     offering.Section,
		TeacherName: offering.TeacherName,
		Day:         day,
		StartMinute: slotStart,
		EndMinute:   end,
		Building:    room.Building,
		Room:        room.Name,
		Capacity:    room.Capacity,
		Department:  offering.Department,
	}

	if err := s.store.Insert(alloc); err != nil {
		return nil, err
	}
	warnings := s.detector.Check(s.store, alloc, alloc.ID)
	return &PlacementResult{Allocation: alloc, Warnings: warnings}, nil
}

// Resize moves the allocation's end, keeping the start fixed. The end is
// snapped up to the next slot boundary. Ends at or before the start, or past
// the grid's last slot, are rejected.
func (s *Session) Resize(id string, newEnd int) (*PlacementResult, error) {
	alloc, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("allocation %s not found", id))
	}
	newEnd = s.grid.AlignEnd(newEnd)
	if newEnd <= alloc.StartMinute {
		return nil, appErrors.Clone(appErrors.ErrInvalidTimeRange,
			fmt.Sprintf("new end %s is not after start %s", FormatMinutes(newEnd), FormatMinutes(alloc.StartMinute)))
	}
	if newEnd > s.grid.LastSlotEnd() {
		return nil, appErrors.Clone(appErrors.ErrOutOfGrid,
			fmt.Sprintf("new end %s exceeds the last slot %s", FormatMinutes(newEnd), FormatMinutes(s.grid.LastSlotEnd())))
	}

	if err := s.store.Update(id, func(a *models.Allocation) {
		a.EndMinute = newEnd
	}); err != nil {
		return nil, err
	}
	updated, _ := s.store.Get(id)
	warnings := s.detector.Check(s.store, updated, id)
	return &PlacementResult{Allocation: updated, Warnings: warnings}, nil
}

// AdjustDuration extends or shrinks the allocation end by deltaMinutes,
// with the same bounds as Resize.
func (s *Session) AdjustDuration(id string, deltaMinutes int) (*PlacementResult, error) {
	alloc, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("allocation %s not found", id))
	}
	return s.Resize(id, alloc.EndMinute+deltaMinutes)
}

// Remove deletes the allocation. Unknown ids are tolerated so repeated
// removal clicks stay harmless.
func (s *Session) Remove(id string) {
	s.store.Remove(id)
}

// Check re-runs conflict detection for an existing allocation.
func (s *Session) Check(id string) ([]models.Conflict, error) {
	alloc, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("allocation %s not found", id))
	}
	return s.detector.Check(s.store, alloc, id), nil
}

func (s *Session) defaultDuration(offering models.ClassOffering) int {
	remaining := int(offering.WeeklyHours() * 60)
	if remaining <= 0 || remaining > s.defaultPlacement {
		remaining = s.defaultPlacement
	}
	return s.grid.Snap(remaining)
}
