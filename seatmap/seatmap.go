package seatmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Room grids are addressed as rowLetter+column ("A1".."Z30"). Rows beyond
// 'Z' cannot be labelled, hence the hard cap of 26.
const (
	MaxRows            = 26
	MaxSeatsPerRow     = 30
	MaxSeatsPerBooking = 8
)

const (
	CategoryStandard = "standard"
	CategoryVIP      = "vip"
	CategoryCouple   = "couple"
)

// ConfigError reports an invalid room configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid room configuration: " + e.Reason
}

// Layout is the resolved geometry of a room: row/column counts plus the
// VIP and couple row memberships. It is immutable once built.
type Layout struct {
	Rows        int
	SeatsPerRow int
	vipRows     map[string]bool
	coupleRows  map[string]bool
}

// NewLayout validates a room configuration and resolves it into a Layout.
// VIP and couple row labels must be single letters within the row range and
// the two sets must be disjoint.
func NewLayout(rows, seatsPerRow int, vipRows, coupleRows []string) (*Layout, error) {
	if rows < 1 || rows > MaxRows {
		return nil, &ConfigError{Reason: fmt.Sprintf("rows must be between 1 and %d, got %d", MaxRows, rows)}
	}
	if seatsPerRow < 1 || seatsPerRow > MaxSeatsPerRow {
		return nil, &ConfigError{Reason: fmt.Sprintf("seatsPerRow must be between 1 and %d, got %d", MaxSeatsPerRow, seatsPerRow)}
	}

	l := &Layout{
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		vipRows:     make(map[string]bool),
		coupleRows:  make(map[string]bool),
	}

	for _, r := range vipRows {
		label := strings.ToUpper(strings.TrimSpace(r))
		if !l.validRowLabel(label) {
			return nil, &ConfigError{Reason: "vip row " + r + " is outside the room"}
		}
		l.vipRows[label] = true
	}
	for _, r := range coupleRows {
		label := strings.ToUpper(strings.TrimSpace(r))
		if !l.validRowLabel(label) {
			return nil, &ConfigError{Reason: "couple row " + r + " is outside the room"}
		}
		if l.vipRows[label] {
			return nil, &ConfigError{Reason: "row " + label + " is listed as both vip and couple"}
		}
		l.coupleRows[label] = true
	}

	return l, nil
}

func (l *Layout) validRowLabel(label string) bool {
	if len(label) != 1 {
		return false
	}
	c := label[0]
	return c >= 'A' && c < 'A'+byte(l.Rows)
}

// RowLabel maps a 0-based row index to its letter.
func RowLabel(i int) string {
	return string(rune('A' + i))
}

// TotalSeats is rows × seatsPerRow.
func (l *Layout) TotalSeats() int {
	return l.Rows * l.SeatsPerRow
}

// Category resolves a seat label to its price tier by row membership.
// VIP wins over couple; rows in neither set are standard.
func (l *Layout) Category(label string) string {
	row, _, err := ParseLabel(label)
	if err != nil {
		return CategoryStandard
	}
	if l.vipRows[row] {
		return CategoryVIP
	}
	if l.coupleRows[row] {
		return CategoryCouple
	}
	return CategoryStandard
}

// Contains reports whether a label addresses a seat inside the grid.
func (l *Layout) Contains(label string) bool {
	row, col, err := ParseLabel(label)
	if err != nil {
		return false
	}
	return l.validRowLabel(row) && col >= 1 && col <= l.SeatsPerRow
}

// ParseLabel splits "B12" into row "B" and column 12.
func ParseLabel(label string) (row string, col int, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return "", 0, fmt.Errorf("malformed seat label %q", label)
	}
	c := label[0]
	if c < 'A' || c > 'Z' {
		return "", 0, fmt.Errorf("malformed seat label %q", label)
	}
	col, err = strconv.Atoi(label[1:])
	if err != nil || col < 1 {
		return "", 0, fmt.Errorf("malformed seat label %q", label)
	}
	return string(c), col, nil
}

// Seat is one position in the resolved map.
type Seat struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

// Seats returns every seat in the room, row-major.
func (l *Layout) Seats() []Seat {
	seats := make([]Seat, 0, l.TotalSeats())
	for r := 0; r < l.Rows; r++ {
		row := RowLabel(r)
		for c := 1; c <= l.SeatsPerRow; c++ {
			label := row + strconv.Itoa(c)
			seats = append(seats, Seat{Label: label, Category: l.Category(label)})
		}
	}
	return seats
}

// SeatMap returns the grid as rows of seats, for clients that render the room.
func (l *Layout) SeatMap() [][]Seat {
	grid := make([][]Seat, l.Rows)
	flat := l.Seats()
	for r := 0; r < l.Rows; r++ {
		grid[r] = flat[r*l.SeatsPerRow : (r+1)*l.SeatsPerRow]
	}
	return grid
}

// UnavailableError reports the seats of a request that are already taken.
type UnavailableError struct {
	Seats []string
}

func (e *UnavailableError) Error() string {
	return "seats already booked: " + strings.Join(e.Seats, ", ")
}

// Conflicts intersects the current booked set with a requested list.
// Membership is checked through a set so long booked lists stay O(1) per seat.
func Conflicts(booked, requested []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, s := range booked {
		taken[strings.ToUpper(s)] = true
	}
	var conflicts []string
	for _, s := range requested {
		if taken[strings.ToUpper(s)] {
			conflicts = append(conflicts, s)
		}
	}
	sort.Strings(conflicts)
	return conflicts
}
