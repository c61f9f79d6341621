package seatmap

import (
	"errors"
	"testing"
)

func TestLayoutProducesFullGrid(t *testing.T) {
	l, err := NewLayout(5, 12, nil, nil)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	seats := l.Seats()
	if len(seats) != 60 {
		t.Fatalf("expected 60 seats, got %d", len(seats))
	}

	seen := make(map[string]bool)
	for _, s := range seats {
		if seen[s.Label] {
			t.Fatalf("duplicate label %s", s.Label)
		}
		seen[s.Label] = true
	}

	// labels must exhaust {A..E}{1..12}
	for r := 0; r < 5; r++ {
		for c := 1; c <= 12; c++ {
			label := RowLabel(r) + itoa(c)
			if !seen[label] {
				t.Fatalf("missing label %s", label)
			}
		}
	}
}

func itoa(n int) string {
	if n >= 10 {
		return string(rune('0'+n/10)) + string(rune('0'+n%10))
	}
	return string(rune('0' + n))
}

func TestCategoryResolution(t *testing.T) {
	l, err := NewLayout(4, 6, []string{"B"}, []string{"D"})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	cases := map[string]string{
		"A1": CategoryStandard,
		"B3": CategoryVIP,
		"C6": CategoryStandard,
		"D1": CategoryCouple,
	}
	for label, want := range cases {
		if got := l.Category(label); got != want {
			t.Errorf("Category(%s) = %s, want %s", label, got, want)
		}
		// deterministic: same answer twice
		if got := l.Category(label); got != want {
			t.Errorf("Category(%s) changed on second call", label)
		}
	}
}

func TestLayoutRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name        string
		rows, seats int
		vip, couple []string
	}{
		{"zero rows", 0, 10, nil, nil},
		{"too many rows", 27, 10, nil, nil},
		{"zero seats", 5, 0, nil, nil},
		{"too many seats", 5, 31, nil, nil},
		{"vip row out of range", 3, 10, []string{"D"}, nil},
		{"couple row out of range", 3, 10, nil, []string{"Z"}},
		{"vip and couple overlap", 5, 10, []string{"B"}, []string{"B"}},
	}
	for _, tc := range cases {
		if _, err := NewLayout(tc.rows, tc.seats, tc.vip, tc.couple); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		} else {
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("%s: expected ConfigError, got %T", tc.name, err)
			}
		}
	}
}

func TestQuoteScenario(t *testing.T) {
	// room(rows=2, seatsPerRow=3, vipRows=["B"]) with standard 75000, vip 95000
	l, err := NewLayout(2, 3, []string{"B"}, nil)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	table := PriceTable{Standard: 75000, VIP: 95000}

	seats, total := l.Quote([]string{"A1", "B2"}, table)
	if total != 170000 {
		t.Fatalf("expected total 170000, got %d", total)
	}
	if seats[0].SeatType != CategoryStandard || seats[0].Price != 75000 {
		t.Errorf("A1 priced wrong: %+v", seats[0])
	}
	if seats[1].SeatType != CategoryVIP || seats[1].Price != 95000 {
		t.Errorf("B2 priced wrong: %+v", seats[1])
	}
}

func TestPriceFallsBackToStandard(t *testing.T) {
	l, _ := NewLayout(3, 4, []string{"A"}, []string{"C"})
	table := PriceTable{Standard: 50000} // vip/couple unset

	if got := l.PriceFor("A1", table); got != 50000 {
		t.Errorf("vip fallback = %d, want 50000", got)
	}
	if got := l.PriceFor("C2", table); got != 50000 {
		t.Errorf("couple fallback = %d, want 50000", got)
	}
}

func TestNormalizeRequest(t *testing.T) {
	if _, err := NormalizeRequest(nil); err != ErrNoSeats {
		t.Errorf("empty request: got %v", err)
	}
	if _, err := NormalizeRequest([]string{"A1", "a1"}); err != ErrDuplicateSeats {
		t.Errorf("duplicate request: got %v", err)
	}
	nine := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}
	if _, err := NormalizeRequest(nine); err != ErrTooManySeats {
		t.Errorf("oversized request: got %v", err)
	}
	if _, err := NormalizeRequest([]string{"1A"}); err == nil {
		t.Error("malformed label accepted")
	}

	got, err := NormalizeRequest([]string{" b2 ", "A10"})
	if err != nil {
		t.Fatalf("NormalizeRequest: %v", err)
	}
	if got[0] != "B2" || got[1] != "A10" {
		t.Errorf("normalization wrong: %v", got)
	}
}

func TestConflicts(t *testing.T) {
	booked := []string{"A1", "C5", "C6"}

	if c := Conflicts(booked, []string{"B1", "B2"}); len(c) != 0 {
		t.Errorf("expected no conflicts, got %v", c)
	}

	c := Conflicts(booked, []string{"C5", "A1", "B9"})
	if len(c) != 2 || c[0] != "A1" || c[1] != "C5" {
		t.Errorf("expected [A1 C5], got %v", c)
	}

	// repeated checks against the same booked set stay stable
	c2 := Conflicts(booked, []string{"C5", "A1", "B9"})
	if len(c2) != len(c) {
		t.Errorf("conflict check not idempotent: %v vs %v", c, c2)
	}
}

func TestContainsAndParse(t *testing.T) {
	l, _ := NewLayout(2, 3, nil, nil)

	if !l.Contains("A1") || !l.Contains("B3") {
		t.Error("valid seats reported missing")
	}
	if l.Contains("C1") {
		t.Error("row outside grid accepted")
	}
	if l.Contains("A4") {
		t.Error("column outside grid accepted")
	}

	row, col, err := ParseLabel("b12")
	if err != nil || row != "B" || col != 12 {
		t.Errorf("ParseLabel(b12) = %s,%d,%v", row, col, err)
	}
	if _, _, err := ParseLabel("B0"); err == nil {
		t.Error("column 0 accepted")
	}
}
