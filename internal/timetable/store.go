package timetable

import (
	"fmt"
	"sort"

	"github.com/opencampus/timetable-api/internal/models"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

// Store is an in-memory allocation collection with secondary indices by
// room, teacher, section, course and day. It is not safe for concurrent
// writers; callers serialize mutations per schedule.
type Store struct {
	items     map[string]models.Allocation
	byRoom    map[string]map[string]struct{}
	byTeacher map[string]map[string]struct{}
	bySection map[string]map[string]struct{}
	byCourse  map[string]map[string]struct{}
	byDay     map[string]map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]models.Allocation),
		byRoom:    make(map[string]map[string]struct{}),
		byTeacher: make(map[string]map[string]struct{}),
		bySection: make(map[string]map[string]struct{}),
		byCourse:  make(map[string]map[string]struct{}),
		byDay:     make(map[string]map[string]struct{}),
	}
}

// Insert adds an allocation, rejecting invalid time ranges.
func (s *Store) Insert(alloc models.Allocation) error {
	if alloc.StartMinute >= alloc.EndMinute {
		return appErrors.Clone(appErrors.ErrInvalidTimeRange,
			fmt.Sprintf("allocation %s: start %d is not before end %d", alloc.ID, alloc.StartMinute, alloc.EndMinute))
	}
	if _, exists := s.items[alloc.ID]; exists {
		s.unindex(s.items[alloc.ID])
	}
	s.items[alloc.ID] = alloc
	s.index(alloc)
	return nil
}

// Remove deletes an allocation by id. Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	alloc, ok := s.items[id]
	if !ok {
		return
	}
	s.unindex(alloc)
	delete(s.items, id)
}

// Get returns the allocation with the given id.
func (s *Store) Get(id string) (models.Allocation, bool) {
	alloc, ok := s.items[id]
	return alloc, ok
}

// Update applies mutate to the stored allocation and re-indexes it. The
// mutated range is validated like an insert.
func (s *Store) Update(id string, mutate func(*models.Allocation)) error {
	alloc, ok := s.items[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("allocation %s not found", id))
	}
	updated := alloc
	mutate(&updated)
	updated.ID = alloc.ID
	if updated.StartMinute >= updated.EndMinute {
		return appErrors.Clone(appErrors.ErrInvalidTimeRange,
			fmt.Sprintf("allocation %s: start %d is not before end %d", id, updated.StartMinute, updated.EndMinute))
	}
	s.unindex(alloc)
	s.items[id] = updated
	s.index(updated)
	return nil
}

// Len returns the number of stored allocations.
func (s *Store) Len() int {
	return len(s.items)
}

// All returns a stable-ordered snapshot of every allocation.
func (s *Store) All() []models.Allocation {
	out := make([]models.Allocation, 0, len(s.items))
	for _, alloc := range s.items {
		out = append(out, alloc)
	}
	sortAllocations(out)
	return out
}

// Filter evaluates pred over a snapshot of the store. Each call restarts
// from the current contents, so mutation between calls is safe.
func (s *Store) Filter(pred func(models.Allocation) bool) []models.Allocation {
	var out []models.Allocation
	for _, alloc := range s.items {
		if pred(alloc) {
			out = append(out, alloc)
		}
	}
	sortAllocations(out)
	return out
}

// ByDay returns allocations on the given canonical weekday.
func (s *Store) ByDay(day string) []models.Allocation {
	return s.collect(s.byDay[day])
}

// ByRoom returns allocations in the given room.
func (s *Store) ByRoom(roomID string) []models.Allocation {
	return s.collect(s.byRoom[roomID])
}

// ByTeacher returns allocations taught by the given teacher.
func (s *Store) ByTeacher(teacher string) []models.Allocation {
	return s.collect(s.byTeacher[teacher])
}

// BySection returns allocations for the given section.
func (s *Store) BySection(section string) []models.Allocation {
	return s.collect(s.bySection[section])
}

// ByCourse returns allocations for the given course code.
func (s *Store) ByCourse(courseCode string) []models.Allocation {
	return s.collect(s.byCourse[courseCode])
}

func (s *Store) collect(ids map[string]struct{}) []models.Allocation {
	if len(ids) == 0 {
		return nil
	}
	out := make([]models.Allocation, 0, len(ids))
	for id := range ids {
		out = append(out, s.items[id])
	}
	sortAllocations(out)
	return out
}

func (s *Store) index(alloc models.Allocation) {
	addIndex(s.byRoom, alloc.RoomID, alloc.ID)
	addIndex(s.byTeacher, alloc.TeacherName, alloc.ID)
	addIndex(s.bySection, alloc.Section, alloc.ID)
	addIndex(s.byCourse, alloc.CourseCode, alloc.ID)
	addIndex(s.byDay, alloc.Day, alloc.ID)
}

func (s *Store) unindex(alloc models.Allocation) {
	dropIndex(s.byRoom, alloc.RoomID, alloc.ID)
	dropIndex(s.byTeacher, alloc.TeacherName, alloc.ID)
	dropIndex(s.bySection, alloc.Section, alloc.ID)
	dropIndex(s.byCourse, alloc.CourseCode, alloc.ID)
	dropIndex(s.byDay, alloc.Day, alloc.ID)
}

func addIndex(index map[string]map[string]struct{}, key, id string) {
	if key == "" {
		return
	}
	bucket, ok := index[key]
	if !ok {
		bucket = make(map[string]struct{})
		index[key] = bucket
	}
	bucket[id] = struct{}{}
}

func dropIndex(index map[string]map[string]struct{}, key, id string) {
	if bucket, ok := index[key]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(index, key)
		}
	}
}

func sortAllocations(allocs []models.Allocation) {
	sort.Slice(allocs, func(i, j int) bool {
		if allocs[i].Day != allocs[j].Day {
			return dayOrder(allocs[i].Day) < dayOrder(allocs[j].Day)
		}
		if allocs[i].StartMinute != allocs[j].StartMinute {
			return allocs[i].StartMinute < allocs[j].StartMinute
		}
		return allocs[i].ID < allocs[j].ID
	})
}

func dayOrder(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return len(Weekdays)
}
