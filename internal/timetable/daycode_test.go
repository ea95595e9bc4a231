package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandDayCodeCompounds(t *testing.T) {
	cases := []struct {
		code string
		want []string
	}{
		{"TTH", []string{Tuesday, Thursday}},
		{"MWF", []string{Monday, Wednesday, Friday}},
		{"MW", []string{Monday, Wednesday}},
		{"TH", []string{Thursday}},
		{"M", []string{Monday}},
		{"SU", []string{Sunday}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExpandDayCode(tc.code), "code %q", tc.code)
	}
}

func TestExpandDayCodeSlashLists(t *testing.T) {
	assert.Equal(t, []string{Monday, Wednesday}, ExpandDayCode("M/W"))
	assert.Equal(t, []string{Monday, Wednesday, Friday}, ExpandDayCode("M/W/F"))
	assert.Equal(t, []string{Tuesday, Thursday, Saturday}, ExpandDayCode("t/th/sat"))
}

func TestExpandDayCodeLongSpellings(t *testing.T) {
	assert.Equal(t, []string{Monday}, ExpandDayCode("Monday"))
	assert.Equal(t, []string{Thursday}, ExpandDayCode("thurs"))
	assert.Equal(t, []string{Tuesday}, ExpandDayCode("TUES"))
}

func TestExpandDayCodeUnknownTokensPassThrough(t *testing.T) {
	assert.Equal(t, []string{"Hol"}, ExpandDayCode("Hol"))
	assert.Equal(t, []string{Monday, "X"}, ExpandDayCode("M/X"))
}

func TestExpandDayCodeDeduplicatesAndTrims(t *testing.T) {
	assert.Equal(t, []string{Monday}, ExpandDayCode(" M / MON "))
	assert.Nil(t, ExpandDayCode("  "))
	assert.Nil(t, ExpandDayCode(""))
}

func TestCanonicalDay(t *testing.T) {
	assert.True(t, CanonicalDay(Wednesday))
	assert.False(t, CanonicalDay("MWF"))
	assert.False(t, CanonicalDay(""))
}
