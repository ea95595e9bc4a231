package timetable

import "strings"

// Canonical weekday names used throughout the engine.
const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"
)

// Weekdays lists canonical weekdays in calendar order.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayCodeTable = map[string][]string{
	"M":         {Monday},
	"MON":       {Monday},
	"MONDAY":    {Monday},
	"T":         {Tuesday},
	"TU":        {Tuesday},
	"TUE":       {Tuesday},
	"TUES":      {Tuesday},
	"TUESDAY":   {Tuesday},
	"W":         {Wednesday},
	"WED":       {Wednesday},
	"WEDNESDAY": {Wednesday},
	"TH":        {Thursday},
	"THU":       {Thursday},
	"THUR":      {Thursday},
	"THURS":     {Thursday},
	"THURSDAY":  {Thursday},
	"F":         {Friday},
	"FRI":       {Friday},
	"FRIDAY":    {Friday},
	"S":         {Saturday},
	"SAT":       {Saturday},
	"SATURDAY":  {Saturday},
	"SU":        {Sunday},
	"SUN":       {Sunday},
	"SUNDAY":    {Sunday},
	"MW":        {Monday, Wednesday},
	"MWF":       {Monday, Wednesday, Friday},
	"TTH":       {Tuesday, Thursday},
}

// ExpandDayCode parses an informal day-group string into canonical weekdays.
// Slash-separated lists ("M/W/F") are split and each token normalized on its
// own. Unknown tokens pass through unchanged rather than failing, so imported
// data with unrecognized day labels stays visible to the caller.
func ExpandDayCode(code string) []string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil
	}

	var days []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(trimmed, "/") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		expanded, ok := dayCodeTable[strings.ToUpper(token)]
		if !ok {
			expanded = []string{token}
		}
		for _, day := range expanded {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	return days
}

// CanonicalDay reports whether day is one of the canonical weekday names.
func CanonicalDay(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
