package timetable

import (
	"fmt"
	"strings"

	"github.com/opencampus/timetable-api/internal/models"
)

// Detector finds time-overlapping allocations sharing a room, teacher or
// section with a candidate. It never returns an error; callers decide
// whether a non-empty report warns or blocks.
type Detector struct{}

// NewDetector returns a conflict detector.
func NewDetector() Detector {
	return Detector{}
}

// Overlaps reports half-open interval overlap between two minute ranges.
// Ranges that merely share a boundary (9:00-10:00 vs 10:00-11:00) do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Check scans same-day allocations in the store and reports every category
// of collision with the candidate. ignoreID excludes the allocation being
// actively edited so drag and resize never conflict with themselves. A
// single overlapping pair may raise several categories.
func (Detector) Check(store *Store, candidate models.Allocation, ignoreID string) []models.Conflict {
	if store == nil {
		return nil
	}

	var conflicts []models.Conflict
	for _, existing := range store.ByDay(candidate.Day) {
		if existing.ID == ignoreID || existing.ID == candidate.ID {
			continue
		}
		if !Overlaps(candidate.StartMinute, candidate.EndMinute, existing.StartMinute, existing.EndMinute) {
			continue
		}
		span := FormatRange(existing.StartMinute, existing.EndMinute)
		if existing.RoomID != "" && existing.RoomID == candidate.RoomID {
			conflicts = append(conflicts, models.Conflict{
				Category:         models.ConflictRoom,
				WithAllocationID: existing.ID,
				Description:      fmt.Sprintf("room %s already booked by %s %s on %s %s", existing.Room, existing.CourseCode, existing.Section, existing.Day, span),
			})
		}
		if comparableTeacher(candidate.TeacherName) && strings.EqualFold(existing.TeacherName, candidate.TeacherName) {
			conflicts = append(conflicts, models.Conflict{
				Category:         models.ConflictTeacher,
				WithAllocationID: existing.ID,
				Description:      fmt.Sprintf("teacher %s already teaching %s %s on %s %s", existing.TeacherName, existing.CourseCode, existing.Section, existing.Day, span),
			})
		}
		if existing.Section != "" && existing.Section == candidate.Section {
			conflicts = append(conflicts, models.Conflict{
				Category:         models.ConflictSection,
				WithAllocationID: existing.ID,
				Description:      fmt.Sprintf("section %s already attending %s on %s %s", existing.Section, existing.CourseCode, existing.Day, span),
			})
		}
	}
	return conflicts
}

// comparableTeacher exempts empty and placeholder teacher names from
// conflict comparison. Unassigned classes cannot double-book a teacher.
func comparableTeacher(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && !strings.EqualFold(trimmed, "TBD")
}
