package models

import (
	"time"

	"cinebook/seatmap"
)

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var PaymentMethods = map[string]bool{
	"cash":        true,
	"momo":        true,
	"vnpay":       true,
	"credit_card": true,
}

type Booking struct {
	BookingID     string               `json:"bookingid" bson:"bookingid"`
	UserID        string               `json:"userid" bson:"userid"`
	ShowtimeID    string               `json:"showtimeid" bson:"showtimeid"`
	Seats         []seatmap.PricedSeat `json:"seats" bson:"seats"`
	TotalSeats    int                  `json:"totalSeats" bson:"totalSeats"`
	TotalPrice    int                  `json:"totalPrice" bson:"totalPrice"`
	PaymentMethod string               `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus string               `json:"paymentStatus" bson:"paymentStatus"`
	BookingStatus string               `json:"bookingStatus" bson:"bookingStatus"`
	BookingCode   string               `json:"bookingCode" bson:"bookingCode"`
	QRCode        string               `json:"qrCode,omitempty" bson:"qrCode,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}
