package bookings

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"cinebook/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBookingInputAcceptsDocumentedShape(t *testing.T) {
	body := `{"showtime":"s123","seats":[{"seatNumber":"A1"},{"seatNumber":"B2"}],"paymentMethod":"cash"}`

	var in bookingInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("documented body rejected: %v", err)
	}
	if in.showtime() != "s123" {
		t.Errorf("showtime = %q, want s123", in.showtime())
	}
	labels := in.seatLabels()
	if len(labels) != 2 || labels[0] != "A1" || labels[1] != "B2" {
		t.Errorf("seatLabels = %v, want [A1 B2]", labels)
	}
}

func TestBookingInputAcceptsBareSeatStrings(t *testing.T) {
	body := `{"showtimeid":"s123","seats":["A1","B2"],"paymentMethod":"momo"}`

	var in bookingInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("string-seat body rejected: %v", err)
	}
	if in.showtime() != "s123" {
		t.Errorf("showtime = %q, want s123", in.showtime())
	}
	labels := in.seatLabels()
	if len(labels) != 2 || labels[0] != "A1" || labels[1] != "B2" {
		t.Errorf("seatLabels = %v, want [A1 B2]", labels)
	}
}

func TestCancelFilterExcludesTerminalStates(t *testing.T) {
	filter := cancelFilter("b123")

	if filter["bookingid"] != "b123" {
		t.Fatalf("filter targets %v, want b123", filter["bookingid"])
	}

	status, ok := filter["bookingStatus"].(bson.M)
	if !ok {
		t.Fatalf("bookingStatus clause missing: %v", filter)
	}
	nin, ok := status["$nin"].([]string)
	if !ok {
		t.Fatalf("$nin clause missing: %v", status)
	}

	excluded := make(map[string]bool, len(nin))
	for _, s := range nin {
		excluded[s] = true
	}
	if !excluded[models.BookingCancelled] || !excluded[models.BookingCompleted] {
		t.Errorf("$nin = %v, must exclude cancelled and completed", nin)
	}
	if excluded[models.BookingPending] || excluded[models.BookingConfirmed] {
		t.Errorf("$nin = %v, must keep pending and confirmed cancellable", nin)
	}
}

func TestNewBookingCodeFormat(t *testing.T) {
	at := time.Date(2026, 7, 9, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		code := newBookingCode(at)
		if len(code) != 14 {
			t.Fatalf("code %q has length %d, want 14", code, len(code))
		}
		if !strings.HasPrefix(code, "CB20260709") {
			t.Fatalf("code %q missing date prefix", code)
		}
		for _, r := range code[10:] {
			if r < '0' || r > '9' {
				t.Fatalf("code %q suffix is not numeric", code)
			}
		}
	}
}

func TestTicketSignatureRoundTrip(t *testing.T) {
	payload := SignTicket("CB202607091234")

	code, ok := VerifyTicketPayload(payload)
	if !ok {
		t.Fatal("valid payload rejected")
	}
	if code != "CB202607091234" {
		t.Fatalf("code = %q, want CB202607091234", code)
	}
}

func TestVerifyTicketPayloadRejectsTampering(t *testing.T) {
	payload := SignTicket("CB202607091234")

	tampered := strings.Replace(payload, "CB202607091234", "CB202607094321", 1)
	if _, ok := VerifyTicketPayload(tampered); ok {
		t.Error("tampered code accepted")
	}

	if _, ok := VerifyTicketPayload("CB202607091234"); ok {
		t.Error("payload without signature accepted")
	}
	if _, ok := VerifyTicketPayload(""); ok {
		t.Error("empty payload accepted")
	}
	if _, ok := VerifyTicketPayload(payload + "x"); ok {
		t.Error("payload with altered signature accepted")
	}
}
