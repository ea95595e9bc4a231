package models

// ViewAxis is the grouping dimension used to project a filtered timetable.
type ViewAxis string

const (
	ViewAll     ViewAxis = "all"
	ViewRoom    ViewAxis = "room"
	ViewSection ViewAxis = "section"
	ViewTeacher ViewAxis = "teacher"
	ViewCourse  ViewAxis = "course"
)

// ViewQuery selects a view axis plus auxiliary filters. Filters that UI
// surfaces used to keep as ambient state are explicit parameters here.
type ViewQuery struct {
	Axis     ViewAxis `form:"view" json:"view"`
	Key      string   `form:"key" json:"key"`
	Building string   `form:"building" json:"building"`
	Room     string   `form:"room" json:"room"`
	Day      string   `form:"day" json:"day"`
	Search   string   `form:"q" json:"q"`
}

// Block is a rendering-level merge of consecutive same-group allocations.
// Always recomputed from current allocations, never persisted.
type Block struct {
	CourseCode  string   `json:"course_code"`
	CourseName  string   `json:"course_name"`
	Section     string   `json:"section"`
	Room        string   `json:"room"`
	Building    string   `json:"building"`
	Capacity    int      `json:"capacity"`
	Day         string   `json:"day_of_week"`
	TeacherName string   `json:"teacher_name"`
	Department  string   `json:"department"`
	StartMinute int      `json:"start_minute"`
	EndMinute   int      `json:"end_minute"`
	SourceIDs   []string `json:"source_allocation_ids"`
}

// Duration returns the merged span in minutes.
func (b Block) Duration() int {
	return b.EndMinute - b.StartMinute
}
