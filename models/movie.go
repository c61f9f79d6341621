package models

import "time"

// Movie statuses
const (
	MovieComingSoon = "coming_soon"
	MovieNowShowing = "now_showing"
	MovieEnded      = "ended"
)

type Movie struct {
	MovieID      string    `json:"movieid" bson:"movieid"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Poster       string    `json:"poster,omitempty" bson:"poster,omitempty"`
	Trailer      string    `json:"trailer,omitempty" bson:"trailer,omitempty"`
	Duration     int       `json:"duration" bson:"duration"` // minutes
	ReleaseDate  time.Time `json:"releaseDate" bson:"releaseDate"`
	EndDate      time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Genres       []string  `json:"genres,omitempty" bson:"genres,omitempty"`
	Director     string    `json:"director,omitempty" bson:"director,omitempty"`
	Actors       []string  `json:"actors,omitempty" bson:"actors,omitempty"`
	Language     string    `json:"language,omitempty" bson:"language,omitempty"`
	Rated        string    `json:"rated,omitempty" bson:"rated,omitempty"` // P, C13, C16, C18
	Rating       float64   `json:"rating" bson:"rating"`
	TotalRatings int       `json:"totalRatings" bson:"totalRatings"`
	Status       string    `json:"status" bson:"status"`
	IsFeatured   bool      `json:"isFeatured" bson:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
