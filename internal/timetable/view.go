package timetable

import (
	"strings"

	"github.com/opencampus/timetable-api/internal/models"
)

// Projector filters the store along a view axis and narrows the result with
// the auxiliary filters carried by the query.
type Projector struct{}

// NewProjector returns a view projector.
func NewProjector() Projector {
	return Projector{}
}

// Project selects allocations for the requested axis and key, then applies
// the building, room, day-substring and free-text filters. Text matching is
// case-insensitive across course code, course name, section, room and
// teacher.
func (Projector) Project(store *Store, q models.ViewQuery) []models.Allocation {
	if store == nil {
		return nil
	}

	var selected []models.Allocation
	switch q.Axis {
	case models.ViewRoom:
		selected = store.ByRoom(q.Key)
	case models.ViewSection:
		selected = store.BySection(q.Key)
	case models.ViewTeacher:
		selected = store.ByTeacher(q.Key)
	case models.ViewCourse:
		selected = store.ByCourse(q.Key)
	default:
		selected = store.All()
	}

	if q.Building == "" && q.Room == "" && q.Day == "" && q.Search == "" {
		return selected
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	day := strings.ToLower(strings.TrimSpace(q.Day))
	out := selected[:0:0]
	for _, alloc := range selected {
		if q.Building != "" && !strings.EqualFold(alloc.Building, q.Building) {
			continue
		}
		if q.Room != "" && !strings.EqualFold(alloc.Room, q.Room) {
			continue
		}
		if day != "" && !strings.Contains(strings.ToLower(alloc.Day), day) {
			continue
		}
		if search != "" && !matchesSearch(alloc, search) {
			continue
		}
		out = append(out, alloc)
	}
	return out
}

func matchesSearch(alloc models.Allocation, search string) bool {
	for _, field := range []string{alloc.CourseCode, alloc.CourseName, alloc.Section, alloc.Room, alloc.TeacherName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
