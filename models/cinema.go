package models

import "time"

type Cinema struct {
	CinemaID    string    `json:"cinemaid" bson:"cinemaid"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Facilities  []string  `json:"facilities,omitempty" bson:"facilities,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
