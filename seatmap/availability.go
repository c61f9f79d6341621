package seatmap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSeats        = errors.New("no seats requested")
	ErrDuplicateSeats = errors.New("request contains duplicate seats")
	ErrTooManySeats   = fmt.Errorf("a booking may hold at most %d seats", MaxSeatsPerBooking)
)

// NormalizeRequest validates and canonicalizes a requested seat list:
// non-empty, at most MaxSeatsPerBooking, no duplicates, labels uppercased.
// The 8-seat cap is enforced here so it holds server-side, not just in the UI.
func NormalizeRequest(labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, ErrNoSeats
	}
	if len(labels) > MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}

	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, raw := range labels {
		label := strings.ToUpper(strings.TrimSpace(raw))
		if _, _, err := ParseLabel(label); err != nil {
			return nil, err
		}
		if seen[label] {
			return nil, ErrDuplicateSeats
		}
		seen[label] = true
		out = append(out, label)
	}
	return out, nil
}
