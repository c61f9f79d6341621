package bookings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/globals"
	"cinebook/live"
	"cinebook/middleware"
	"cinebook/models"
	"cinebook/mq"
	"cinebook/seatmap"
	"cinebook/showtimes"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const codeInsertAttempts = 3

type bookingSeat struct {
	SeatNumber string `json:"seatNumber"`
}

// UnmarshalJSON accepts both the documented {"seatNumber": "A1"} object
// and a bare "A1" string.
func (s *bookingSeat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.SeatNumber)
	}
	var obj struct {
		SeatNumber string `json:"seatNumber"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.SeatNumber = obj.SeatNumber
	return nil
}

type bookingInput struct {
	Showtime      string        `json:"showtime"`
	ShowtimeID    string        `json:"showtimeid"`
	Seats         []bookingSeat `json:"seats"`
	PaymentMethod string        `json:"paymentMethod"`
}

// showtime returns the target showtime id from either field name; the
// API docs use "showtime", older clients send "showtimeid".
func (in *bookingInput) showtime() string {
	if in.Showtime != "" {
		return in.Showtime
	}
	return in.ShowtimeID
}

func (in *bookingInput) seatLabels() []string {
	labels := make([]string, 0, len(in.Seats))
	for _, s := range in.Seats {
		labels = append(labels, s.SeatNumber)
	}
	return labels
}

// CreateBooking books seats on a showtime. The claim is a single
// conditional update on the showtime document: it matches only while
// none of the requested seats are taken, so two concurrent requests for
// the same seat cannot both succeed.
func CreateBooking(hub *live.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not logged in")
			return
		}

		var in bookingInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		showtimeID := in.showtime()
		if showtimeID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "showtime is required")
			return
		}
		if !models.PaymentMethods[in.PaymentMethod] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method")
			return
		}

		seats, err := seatmap.NormalizeRequest(in.seatLabels())
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := r.Context()

		var showtime models.Showtime
		if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": showtimeID}).Decode(&showtime); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
			return
		}
		if !showtime.IsActive {
			utils.RespondWithError(w, http.StatusBadRequest, "Showtime is not open for booking")
			return
		}
		if time.Now().After(showtime.StartTime) {
			utils.RespondWithError(w, http.StatusBadRequest, "Showtime has already started")
			return
		}

		var room models.Room
		if err := db.RoomCollection.FindOne(ctx, bson.M{"roomid": showtime.RoomID}).Decode(&room); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Room for this showtime is missing")
			return
		}
		layout, err := seatmap.NewLayout(room.Rows, room.SeatsPerRow, room.VIPRows, room.CoupleRows)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Room configuration is invalid")
			return
		}

		for _, s := range seats {
			if !layout.Contains(s) {
				utils.RespondWithError(w, http.StatusBadRequest, "Seat "+s+" does not exist in this room")
				return
			}
		}

		pricedSeats, total := layout.Quote(seats, showtime.Price)

		// The claim. MatchedCount == 0 means another booking got one of
		// these seats first (or the showtime was deactivated meanwhile).
		res, err := db.ShowtimeCollection.UpdateOne(ctx,
			bson.M{
				"showtimeid":  showtimeID,
				"isActive":    true,
				"bookedSeats": bson.M{"$nin": seats},
			},
			bson.M{
				"$addToSet": bson.M{"bookedSeats": bson.M{"$each": seats}},
				"$set":      bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reserve seats")
			return
		}
		if res.MatchedCount == 0 {
			var current models.Showtime
			if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": showtimeID}).Decode(&current); err == nil {
				if taken := seatmap.Conflicts(current.BookedSeats, seats); len(taken) > 0 {
					utils.RespondWithJSON(w, http.StatusConflict, utils.M{
						"success":          false,
						"message":          "Some seats are no longer available",
						"unavailableSeats": taken,
					})
					return
				}
			}
			utils.RespondWithError(w, http.StatusConflict, "Seats could not be reserved")
			return
		}

		now := time.Now()
		booking := models.Booking{
			BookingID:     "b" + utils.GenerateID(10),
			UserID:        userID,
			ShowtimeID:    showtimeID,
			Seats:         pricedSeats,
			TotalSeats:    len(pricedSeats),
			TotalPrice:    total,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: models.PaymentPending,
			BookingStatus: models.BookingPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		inserted := false
		for attempt := 0; attempt < codeInsertAttempts; attempt++ {
			booking.BookingCode = newBookingCode(now)
			booking.QRCode = SignTicket(booking.BookingCode)
			if _, err = db.BookingCollection.InsertOne(ctx, booking); err == nil {
				inserted = true
				break
			}
			if !mongo.IsDuplicateKeyError(err) {
				break
			}
		}
		if !inserted {
			releaseSeats(showtimeID, seats)
			log.Printf("booking insert failed for %s: %v", showtimeID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}

		showtimes.InvalidateSeatCache(showtimeID)
		hub.Broadcast(live.SeatEvent{Action: live.ActionBooked, ShowtimeID: showtimeID, Seats: seats})
		mq.Emit("booking-created", mq.Index{
			EntityType: "booking",
			EntityId:   booking.BookingID,
			Method:     "POST",
			ItemId:     showtime.MovieID,
			ItemType:   "movie",
		})

		utils.RespondWithData(w, http.StatusCreated, booking)
	}
}

// cancelFilter matches a booking only while it is still cancellable.
func cancelFilter(bookingID string) bson.M {
	return bson.M{
		"bookingid": bookingID,
		"bookingStatus": bson.M{
			"$nin": []string{models.BookingCancelled, models.BookingCompleted},
		},
	}
}

// releaseSeats gives seats back to a showtime after a failed insert or
// a cancellation.
func releaseSeats(showtimeID string, seats []string) {
	_, err := db.ShowtimeCollection.UpdateOne(context.Background(),
		bson.M{"showtimeid": showtimeID},
		bson.M{
			"$pull": bson.M{"bookedSeats": bson.M{"$in": seats}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		log.Printf("failed to release seats %v on %s: %v", seats, showtimeID, err)
	}
}

// CancelBooking cancels a pending or confirmed booking and releases its
// seats. Owners can cancel their own bookings until the showtime
// starts; admins can cancel any booking.
func CancelBooking(hub *live.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		bookingID := ps.ByName("id")
		ctx := r.Context()

		var booking models.Booking
		if err := db.BookingCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&booking); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}

		isAdmin := middleware.IsAdmin(r)
		if booking.UserID != userID && !isAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "You can only cancel your own bookings")
			return
		}

		if !isAdmin {
			var showtime models.Showtime
			if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": booking.ShowtimeID}).Decode(&showtime); err == nil {
				if time.Now().After(showtime.StartTime) {
					utils.RespondWithError(w, http.StatusBadRequest, "Showtime has already started")
					return
				}
			}
		}

		set := bson.M{
			"bookingStatus": models.BookingCancelled,
			"updatedAt":     time.Now(),
		}
		if booking.PaymentStatus == models.PaymentPaid {
			set["paymentStatus"] = models.PaymentRefunded
		}

		// The filtered update is the state gate: it matches only while
		// the booking is still cancellable, so a concurrent status
		// change cannot slip through between a check and the write.
		res, err := db.BookingCollection.UpdateOne(ctx, cancelFilter(bookingID), bson.M{"$set": set})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Booking is already cancelled or completed")
			return
		}

		seats := make([]string, 0, len(booking.Seats))
		for _, s := range booking.Seats {
			seats = append(seats, s.SeatNumber)
		}
		releaseSeats(booking.ShowtimeID, seats)

		showtimes.InvalidateSeatCache(booking.ShowtimeID)
		hub.Broadcast(live.SeatEvent{Action: live.ActionReleased, ShowtimeID: booking.ShowtimeID, Seats: seats})

		var movieID string
		var showtime models.Showtime
		if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": booking.ShowtimeID}).Decode(&showtime); err == nil {
			movieID = showtime.MovieID
		}
		mq.Emit("booking-cancelled", mq.Index{
			EntityType: "booking",
			EntityId:   bookingID,
			Method:     "PATCH",
			ItemId:     movieID,
			ItemType:   "movie",
		})

		utils.RespondWithMessage(w, http.StatusOK, "Booking cancelled")
	}
}
