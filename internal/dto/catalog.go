package dto

// OfferingResponse is the wire form of a class offering.
type OfferingResponse struct {
	ID               string   `json:"id"`
	CourseCode       string   `json:"courseCode"`
	CourseName       string   `json:"courseName"`
	Section          string   `json:"section"`
	TeacherName      string   `json:"teacherName,omitempty"`
	LecHours         float64  `json:"lecHours"`
	LabHours         float64  `json:"labHours"`
	WeeklyHours      float64  `json:"weeklyHours"`
	DegreeProgram    string   `json:"degreeProgram,omitempty"`
	YearLevel        int      `json:"yearLevel,omitempty"`
	Department       string   `json:"department,omitempty"`
	RequiredFeatures []string `json:"requiredFeatures,omitempty"`
}

// RoomResponse is the wire form of a bookable room.
type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Building    string   `json:"building"`
	Capacity    int      `json:"capacity"`
	FeatureTags []string `json:"featureTags,omitempty"`
}
