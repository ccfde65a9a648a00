package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WallClockLayout is the display format for session times ("9:00 AM").
// ParseWallClock must always be able to re-parse anything produced with
// this layout.
const WallClockLayout = "3:04 PM"

var wallClockRegex = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm])\s*$`)

// ParseWallClock converts a 12-hour display time ("9:00 AM", "1:05 pm",
// "12 AM") into minutes since midnight. Malformed input yields 0 rather
// than an error so a bad stored time degrades to midnight instead of
// breaking the whole dashboard.
func ParseWallClock(display string) int {
	m := wallClockRegex.FindStringSubmatch(display)
	if m == nil {
		return 0
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return 0
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0
		}
	}

	meridiem := strings.ToUpper(m[3])
	if meridiem == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return hour*60 + minute
}

// FormatWallClock renders an instant in the display format the parser
// understands.
func FormatWallClock(t time.Time) string {
	return t.Format(WallClockLayout)
}

// MinutesOfDay returns the wall-clock minutes since midnight for t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
