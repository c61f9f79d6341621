package models

import "time"

type Room struct {
	RoomID      string    `json:"roomid" bson:"roomid"`
	CinemaID    string    `json:"cinemaid" bson:"cinemaid"`
	Name        string    `json:"name" bson:"name"`
	Type        string    `json:"type,omitempty" bson:"type,omitempty"` // 2D, 3D, IMAX, 4DX, Dolby Atmos
	Rows        int       `json:"rows" bson:"rows"`
	SeatsPerRow int       `json:"seatsPerRow" bson:"seatsPerRow"`
	TotalSeats  int       `json:"totalSeats" bson:"totalSeats"`
	VIPRows     []string  `json:"vipRows,omitempty" bson:"vipRows,omitempty"`
	CoupleRows  []string  `json:"coupleRows,omitempty" bson:"coupleRows,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
