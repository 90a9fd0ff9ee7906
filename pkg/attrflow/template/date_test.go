package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatDate tests the PHP date letters.
func TestFormatDate(t *testing.T) {
	// Tuesday, 5 March 2024, 14:07:09.123456 UTC
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 123456000, time.UTC)

	tests := []struct {
		layout   string
		expected string
	}{
		{"d", "05"},
		{"D", "Tue"},
		{"j", "5"},
		{"l", "Tuesday"},
		{"N", "2"},
		{"S", "th"},
		{"w", "2"},
		{"z", "64"},
		{"W", "10"},
		{"F", "March"},
		{"m", "03"},
		{"M", "Mar"},
		{"n", "3"},
		{"t", "31"},
		{"L", "1"},
		{"o", "2024"},
		{"Y", "2024"},
		{"y", "24"},
		{"a", "pm"},
		{"A", "PM"},
		{"B", "629"},
		{"g", "2"},
		{"G", "14"},
		{"h", "02"},
		{"H", "14"},
		{"i", "07"},
		{"s", "09"},
		{"u", "123456"},
		{"v", "123"},
		{"e", "UTC"},
		{"I", "0"},
		{"O", "+0000"},
		{"P", "+00:00"},
		{"p", "Z"},
		{"T", "UTC"},
		{"Z", "0"},
		{"c", "2024-03-05T14:07:09+00:00"},
		{"r", "Tue, 05 Mar 2024 14:07:09 +0000"},
		{"U", "1709647629"},
		{"Y-m-d", "2024-03-05"},
		{"d.m.Y H:i", "05.03.2024 14:07"},
		{`\Y Y`, "Y 2024"},
		{`\\`, `\`},
		{"Y/", "2024/"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(ts, tt.layout))
		})
	}
}

func TestFormatDate_Offsets(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	ts := time.Date(2021, time.January, 3, 0, 30, 0, 0, zone)

	assert.Equal(t, "+0100", FormatDate(ts, "O"))
	assert.Equal(t, "+01:00", FormatDate(ts, "p"))
	assert.Equal(t, "3600", FormatDate(ts, "Z"))
	assert.Equal(t, "12 am", FormatDate(ts, "g a"))
	// ISO year differs from the calendar year in the first days of January.
	assert.Equal(t, "2020-W53-7", FormatDate(ts, `o-\WW-N`))
	assert.Equal(t, "3rd", FormatDate(ts, "jS"))
}

func TestFormatDate_ShortYears(t *testing.T) {
	tests := []struct {
		year     int
		expected string
	}{
		{999, "0999"},
		{5, "0005"},
		{0, "0000"},
		{-44, "-0044"},
		{12345, "12345"},
	}

	for _, tt := range tests {
		ts := time.Date(tt.year, time.June, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.expected, FormatDate(ts, "Y"), "year %d", tt.year)
	}
	assert.Equal(t, "01.06.0999", FormatDate(time.Date(999, time.June, 1, 0, 0, 0, 0, time.UTC), "d.m.Y"))
}

func TestFormatDate_KeepsLocation(t *testing.T) {
	zone := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, zone)

	// The wall clock of ts is formatted, not its UTC or local equivalent.
	assert.Equal(t, "2024-03-05 23:30 EST -05:00", FormatDate(ts, "Y-m-d H:i T P"))
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 31: "st"}
	for day, expected := range tests {
		assert.Equal(t, expected, ordinalSuffix(day), "day %d", day)
	}
}
