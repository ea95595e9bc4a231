package models

import "time"

// Allocation is one placed occurrence of a class offering in a room for a
// contiguous time range on a single weekday. Minute values count from
// midnight and are multiples of the grid granularity.
type Allocation struct {
	ID          string    `db:"id" json:"id"`
	ScheduleID  string    `db:"schedule_id" json:"schedule_id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	RoomID      string    `db:"room_id" json:"room_id"`
	CourseCode  string    `db:"course_code" json:"course_code"`
	CourseName  string    `db:"course_name" json:"course_name"`
	Section     string    `db:"section" json:"section"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Day         string    `db:"day_of_week" json:"day_of_week"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	Building    string    `db:"building" json:"building"`
	Room        string    `db:"room" json:"room"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Department  string    `db:"department" json:"department"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Duration returns the allocation span in minutes.
func (a Allocation) Duration() int {
	return a.EndMinute - a.StartMinute
}

// Conflict categories identify the axis on which two allocations collide.
const (
	ConflictRoom    = "ROOM"
	ConflictTeacher = "TEACHER"
	ConflictSection = "SECTION"
)

// Conflict describes a detected double-booking against an existing allocation.
type Conflict struct {
	Category         string `json:"category"`
	WithAllocationID string `json:"with_allocation_id"`
	Description      string `json:"description"`
}

// AllocationFilter narrows allocation listings.
type AllocationFilter struct {
	ScheduleID string
	RoomID     string
	Section    string
	Teacher    string
	CourseCode string
	Day        string
}
