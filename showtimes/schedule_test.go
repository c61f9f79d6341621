package showtimes

import (
	"testing"
	"time"
)

func TestScreeningEnd(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

	end := ScreeningEnd(start, 120)
	want := time.Date(2026, 3, 14, 21, 45, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("ScreeningEnd = %v, want %v", end, want)
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", at(10, 0), at(12, 0), at(13, 0), at(15, 0), false},
		{"disjoint after", at(16, 0), at(18, 0), at(13, 0), at(15, 0), false},
		{"partial overlap", at(10, 0), at(12, 0), at(11, 0), at(13, 0), true},
		{"contained", at(10, 0), at(15, 0), at(11, 0), at(12, 0), true},
		{"identical", at(10, 0), at(12, 0), at(10, 0), at(12, 0), true},
		{"back to back", at(10, 0), at(12, 0), at(12, 0), at(14, 0), false},
		{"back to back reversed", at(12, 0), at(14, 0), at(10, 0), at(12, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// symmetry
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}
