package models

import "time"

// ClassOffering is catalog data describing a class that must be placed.
// Owned by the catalog; this service only reads it.
type ClassOffering struct {
	ID               string   `db:"id" json:"id"`
	CourseCode       string   `db:"course_code" json:"course_code"`
	CourseName       string   `db:"course_name" json:"course_name"`
	Section          string   `db:"section" json:"section"`
	TeacherName      string   `db:"teacher_name" json:"teacher_name"`
	LecHours         float64  `db:"lec_hours" json:"lec_hours"`
	LabHours         float64  `db:"lab_hours" json:"lab_hours"`
	DegreeProgram    string   `db:"degree_program" json:"degree_program"`
	YearLevel        int      `db:"year_level" json:"year_level"`
	RequiredFeatures []string `db:"-" json:"required_features"`
	Department       string   `db:"department" json:"department"`
}

// WeeklyHours returns the total contact hours the offering still demands.
func (c ClassOffering) WeeklyHours() float64 {
	return c.LecHours + c.LabHours
}

// Room is catalog data for a bookable room.
type Room struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Building    string    `db:"building" json:"building"`
	Capacity    int       `db:"capacity" json:"capacity"`
	FeatureTags []string  `db:"-" json:"feature_tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
