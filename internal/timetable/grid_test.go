package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSlots(t *testing.T) {
	grid := NewGrid(9*60, 11*60, 30)
	slots := grid.Slots()
	require.Len(t, slots, 4)
	assert.Equal(t, 9*60, slots[0].StartMinute)
	assert.Equal(t, 9*60+30, slots[0].EndMinute)
	assert.Equal(t, "09:00 - 09:30", slots[0].Label)
	assert.Equal(t, "10:30 - 11:00", slots[3].Label)
}

func TestGridDefaultsToRenderWindow(t *testing.T) {
	grid := NewGrid(0, 0, 0)
	assert.Equal(t, RenderDayStart, grid.StartMinute)
	assert.Equal(t, RenderDayEnd, grid.EndMinute)
	assert.Equal(t, DefaultInterval, grid.Interval)
	// 07:00-21:00 at 30 minutes is 28 slots.
	assert.Len(t, grid.Slots(), 28)
}

func TestSlotCoversHalfOpen(t *testing.T) {
	slot := Slot{StartMinute: 10 * 60, EndMinute: 10*60 + 30}
	assert.True(t, slot.Covers(9*60, 10*60+30))
	// Allocation ending exactly at the slot start does not cover it.
	assert.False(t, slot.Covers(9*60, 10*60))
	assert.True(t, slot.Covers(10*60, 11*60))
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("09:00 - 10:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60, start)
	assert.Equal(t, 10*60+30, end)

	_, _, err = ParseRange("10:00 - 10:00")
	require.Error(t, err)
	_, _, err = ParseRange("25:00 - 26:00")
	require.Error(t, err)
	_, _, err = ParseRange("nonsense")
	require.Error(t, err)
}

func TestFormatRangeRoundTrip(t *testing.T) {
	start, end, err := ParseRange(FormatRange(13*60, 14*60+30))
	require.NoError(t, err)
	assert.Equal(t, 13*60, start)
	assert.Equal(t, 14*60+30, end)
}

func TestFormatMinutes12(t *testing.T) {
	assert.Equal(t, "7:00 AM", FormatMinutes12(7*60))
	assert.Equal(t, "12:00 PM", FormatMinutes12(12*60))
	assert.Equal(t, "12:30 AM", FormatMinutes12(30))
	assert.Equal(t, "9:00 PM", FormatMinutes12(21*60))
	assert.Equal(t, "1:15 PM", FormatMinutes12(13*60+15))
}

func TestGridSnap(t *testing.T) {
	grid := NewGrid(RenderDayStart, RenderDayEnd, 30)
	assert.Equal(t, 90, grid.Snap(90))
	assert.Equal(t, 60, grid.Snap(75))
	assert.Equal(t, 30, grid.Snap(10))
}

func TestGridAlign(t *testing.T) {
	grid := NewGrid(RenderDayStart, RenderDayEnd, 30)
	// Starts snap down, ends snap up; aligned values pass through.
	assert.Equal(t, 9*60, grid.AlignStart(9*60+15))
	assert.Equal(t, 9*60, grid.AlignStart(9*60))
	assert.Equal(t, 10*60+30, grid.AlignEnd(10*60+17))
	assert.Equal(t, 10*60, grid.AlignEnd(10*60))
}
