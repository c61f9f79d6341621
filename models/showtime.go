package models

import (
	"time"

	"cinebook/seatmap"
)

// Showtime owns the live booked-seat ledger for one screening. Bookings
// capture price snapshots; bookedSeats here is the source of truth for
// availability.
type Showtime struct {
	ShowtimeID  string             `json:"showtimeid" bson:"showtimeid"`
	MovieID     string             `json:"movieid" bson:"movieid"`
	CinemaID    string             `json:"cinemaid" bson:"cinemaid"`
	RoomID      string             `json:"roomid" bson:"roomid"`
	StartTime   time.Time          `json:"startTime" bson:"startTime"`
	EndTime     time.Time          `json:"endTime" bson:"endTime"`
	Price       seatmap.PriceTable `json:"price" bson:"price"`
	BookedSeats []string           `json:"bookedSeats" bson:"bookedSeats"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
