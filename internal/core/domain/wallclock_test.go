package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestParseWallClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		display string
		want    int
	}{
		{"Midnight", "12:00 AM", 0},
		{"Noon", "12:00 PM", 720},
		{"Early afternoon", "1:05 PM", 785},
		{"Morning", "9:00 AM", 540},
		{"No minutes", "9 AM", 540},
		{"Lowercase meridiem", "1:05 pm", 785},
		{"Last minute of day", "11:59 PM", 1439},
		{"Malformed falls back to zero", "not a time", 0},
		{"Empty falls back to zero", "", 0},
		{"Hour out of range falls back to zero", "13:00 PM", 0},
		{"Minute out of range falls back to zero", "9:61 AM", 0},
		{"24h format is rejected", "21:30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWallClock(tt.display)
			if got != tt.want {
				t.Errorf("ParseWallClock(%q) = %d, want %d", tt.display, got, tt.want)
			}
		})
	}
}

func TestParseWallClockRange(t *testing.T) {
	t.Parallel()

	// Every well-formed display time lands inside a single day.
	for hour := 1; hour <= 12; hour++ {
		for minute := 0; minute < 60; minute += 7 {
			for _, meridiem := range []string{"AM", "PM"} {
				display := fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
				got := ParseWallClock(display)
				if got < 0 || got > 1439 {
					t.Errorf("ParseWallClock(%q) = %d, out of [0, 1439]", display, got)
				}
			}
		}
	}
}

func TestFormatWallClockRoundTrip(t *testing.T) {
	t.Parallel()

	// The display format must stay re-parseable to the same minute:
	// up-next ordering depends on it.
	instants := []time.Time{
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 13, 5, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC),
	}

	for _, instant := range instants {
		display := FormatWallClock(instant)
		if got, want := ParseWallClock(display), MinutesOfDay(instant); got != want {
			t.Errorf("round trip for %v: ParseWallClock(%q) = %d, want %d", instant, display, got, want)
		}
	}
}
