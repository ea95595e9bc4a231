package dto

// PlaceRequest drops a class offering onto the timetable grid.
type PlaceRequest struct {
	ClassID   string `json:"classId" validate:"required"`
	RoomID    string `json:"roomId"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	Duration  int    `json:"durationMinutes" validate:"omitempty,min=30,max=240"`
}

// ResizeRequest changes the end time of an existing allocation.
type ResizeRequest struct {
	EndTime string `json:"endTime" validate:"required"`
}

// AdjustDurationRequest grows or shrinks an allocation by whole grid steps.
type AdjustDurationRequest struct {
	DeltaMinutes int `json:"deltaMinutes" validate:"required"`
}

// ConflictResponse describes one advisory conflict raised against an allocation.
type ConflictResponse struct {
	Category         string `json:"category"`
	WithAllocationID string `json:"withAllocationId"`
	Description      string `json:"description"`
}

// AllocationResponse is the wire form of a placed allocation.
type AllocationResponse struct {
	ID          string `json:"id"`
	ScheduleID  string `json:"scheduleId"`
	ClassID     string `json:"classId"`
	RoomID      string `json:"roomId,omitempty"`
	CourseCode  string `json:"courseCode"`
	CourseName  string `json:"courseName"`
	Section     string `json:"section"`
	TeacherName string `json:"teacherName,omitempty"`
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Building    string `json:"building,omitempty"`
	Room        string `json:"room,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	Department  string `json:"department,omitempty"`
}

// PlacementResponse pairs a stored allocation with its advisory conflicts.
type PlacementResponse struct {
	Allocation AllocationResponse `json:"allocation"`
	Conflicts  []ConflictResponse `json:"conflicts"`
}

// ImportAllocationRequest is one row of a bulk schedule import.
type ImportAllocationRequest struct {
	ClassID   string `json:"classId" validate:"required"`
	RoomID    string `json:"roomId"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ImportScheduleRequest replaces the whole schedule in one transaction.
type ImportScheduleRequest struct {
	Allocations []ImportAllocationRequest `json:"allocations" validate:"required,dive"`
}
