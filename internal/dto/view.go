package dto

// TimetableQuery filters the projected timetable.
type TimetableQuery struct {
	Axis     string `form:"axis" validate:"omitempty,oneof=all room section teacher course"`
	Key      string `form:"key"`
	Building string `form:"building"`
	Room     string `form:"room"`
	Day      string `form:"day"`
	Search   string `form:"q"`
}

// BlockResponse is one merged display block on the timetable grid.
type BlockResponse struct {
	CourseCode  string   `json:"courseCode"`
	CourseName  string   `json:"courseName"`
	Section     string   `json:"section"`
	Room        string   `json:"room,omitempty"`
	Building    string   `json:"building,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
	Day         string   `json:"day"`
	TeacherName string   `json:"teacherName,omitempty"`
	Department  string   `json:"department,omitempty"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	SourceIDs   []string `json:"sourceIds"`
}

// SlotResponse is one grid row label.
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

// TimetableResponse carries the full rendered view for one schedule.
type TimetableResponse struct {
	ScheduleID string             `json:"scheduleId"`
	Days       []string           `json:"days"`
	Slots      []SlotResponse     `json:"slots"`
	Blocks     []BlockResponse    `json:"blocks"`
	Conflicts  []ConflictResponse `json:"conflicts"`
}
