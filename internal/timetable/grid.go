package timetable

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

// DefaultInterval is the grid granularity in minutes.
const DefaultInterval = 30

// Production rendering uses a fixed Monday-Saturday 07:00-21:00 window
// regardless of which days and times actually hold data, so the layout stays
// stable across sparse or irregular schedules.
const (
	RenderDayStart = 7 * 60
	RenderDayEnd   = 21 * 60
)

// RenderDays is the fixed day range used for rendering grids.
var RenderDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Slot is one fixed-granularity grid cell.
type Slot struct {
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Label       string `json:"label"`
}

// Grid generates slots over a configurable daily window.
type Grid struct {
	StartMinute int
	EndMinute   int
	Interval    int
}

// NewGrid builds a grid, falling back to the fixed rendering window and the
// default 30-minute granularity for out-of-range arguments.
func NewGrid(startMinute, endMinute, interval int) Grid {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if startMinute < 0 || endMinute <= startMinute {
		startMinute = RenderDayStart
		endMinute = RenderDayEnd
	}
	return Grid{StartMinute: startMinute, EndMinute: endMinute, Interval: interval}
}

// Slots returns the ordered slot sequence for the grid window.
func (g Grid) Slots() []Slot {
	var slots []Slot
	for start := g.StartMinute; start+g.Interval <= g.EndMinute; start += g.Interval {
		slots = append(slots, Slot{
			StartMinute: start,
			EndMinute:   start + g.Interval,
			Label:       fmt.Sprintf("%s - %s", FormatMinutes(start), FormatMinutes(start+g.Interval)),
		})
	}
	return slots
}

// LastSlotEnd returns the end minute of the final slot in the window.
func (g Grid) LastSlotEnd() int {
	span := g.EndMinute - g.StartMinute
	return g.StartMinute + (span/g.Interval)*g.Interval
}

// Snap rounds minutes down to the grid granularity, keeping at least one
// interval.
func (g Grid) Snap(minutes int) int {
	snapped := (minutes / g.Interval) * g.Interval
	if snapped < g.Interval {
		snapped = g.Interval
	}
	return snapped
}

// AlignStart snaps a start minute down to the grid granularity.
func (g Grid) AlignStart(minutes int) int {
	return (minutes / g.Interval) * g.Interval
}

// AlignEnd snaps an end minute up to the grid granularity.
func (g Grid) AlignEnd(minutes int) int {
	if rem := minutes % g.Interval; rem != 0 {
		minutes += g.Interval - rem
	}
	return minutes
}

// Covers reports whether the allocation range occupies the slot, using the
// half-open convention: the slot start must fall in [start, end).
func (s Slot) Covers(startMinute, endMinute int) bool {
	return s.StartMinute >= startMinute && s.StartMinute < endMinute
}

// FormatMinutes renders minutes since midnight as 24-hour "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatMinutes12 renders minutes since midnight in 12-hour clock notation,
// presentation only; storage and interchange stay 24-hour.
func FormatMinutes12(minutes int) string {
	hour := minutes / 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes%60, meridiem)
}

// FormatRange renders a start/end pair in the canonical interchange format.
func FormatRange(startMinute, endMinute int) string {
	return fmt.Sprintf("%s - %s", FormatMinutes(startMinute), FormatMinutes(endMinute))
}

// ParseClock converts a 24-hour "HH:MM" literal into minutes since midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, appErrors.Clone(appErrors.ErrInvalidTimeRange, fmt.Sprintf("invalid time literal %q", raw))
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, appErrors.Clone(appErrors.ErrInvalidTimeRange, fmt.Sprintf("invalid hour in %q", raw))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, appErrors.Clone(appErrors.ErrInvalidTimeRange, fmt.Sprintf("invalid minute in %q", raw))
	}
	return hour*60 + minute, nil
}

// ParseRange converts an "HH:MM - HH:MM" literal into a start/end minute pair.
func ParseRange(raw string) (int, int, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, appErrors.Clone(appErrors.ErrInvalidTimeRange, fmt.Sprintf("invalid time range %q", raw))
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, appErrors.Clone(appErrors.ErrInvalidTimeRange, fmt.Sprintf("start is not before end in %q", raw))
	}
	return start, end, nil
}
