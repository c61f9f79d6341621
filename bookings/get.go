package bookings

import (
	"encoding/json"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/globals"
	"cinebook/middleware"
	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var bookingStatuses = map[string]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCancelled: true,
	models.BookingCompleted: true,
}

var paymentStatuses = map[string]bool{
	models.PaymentPending:  true,
	models.PaymentPaid:     true,
	models.PaymentFailed:   true,
	models.PaymentRefunded: true,
}

// GetMyBookings lists the caller's bookings, newest first.
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	filter := bson.M{"userid": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		if !bookingStatuses[status] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["bookingStatus"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.BookingCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(r.Context())

	bookings := []models.Booking{}
	if err := cursor.All(r.Context(), &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	utils.RespondWithList(w, http.StatusOK, bookings)
}

// GetBooking returns one booking. Owners see their own; admins see any.
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var booking models.Booking
	if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingid": ps.ByName("id")}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if booking.UserID != userID && !middleware.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only view your own bookings")
		return
	}

	detail := utils.M{"booking": booking}
	var showtime models.Showtime
	if err := db.ShowtimeCollection.FindOne(r.Context(), bson.M{"showtimeid": booking.ShowtimeID}).Decode(&showtime); err == nil {
		detail["showtime"] = showtime
		var movie models.Movie
		if err := db.MovieCollection.FindOne(r.Context(), bson.M{"movieid": showtime.MovieID}).Decode(&movie); err == nil {
			detail["movie"] = movie
		}
	}

	utils.RespondWithData(w, http.StatusOK, detail)
}

// GetAllBookings is the admin listing with status and date filters.
func GetAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := bson.M{}

	if status := q.Get("status"); status != "" {
		if !bookingStatuses[status] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["bookingStatus"] = status
	}
	if payment := q.Get("paymentStatus"); payment != "" {
		if !paymentStatuses[payment] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid paymentStatus filter")
			return
		}
		filter["paymentStatus"] = payment
	}
	if showtimeID := q.Get("showtimeid"); showtimeID != "" {
		filter["showtimeid"] = showtimeID
	}
	if day := q.Get("date"); day != "" {
		dayStart, err := time.Parse("2006-01-02", day)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter["createdAt"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := db.BookingCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(r.Context())

	bookings := []models.Booking{}
	if err := cursor.All(r.Context(), &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	utils.RespondWithList(w, http.StatusOK, bookings)
}

// UpdateBookingStatus lets an admin move a booking through its
// lifecycle, typically pending to confirmed once payment clears.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	var in struct {
		BookingStatus string `json:"bookingStatus"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.BookingStatus == "" && in.PaymentStatus == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "bookingStatus or paymentStatus is required")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if in.BookingStatus != "" {
		if !bookingStatuses[in.BookingStatus] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid bookingStatus")
			return
		}
		set["bookingStatus"] = in.BookingStatus
	}
	if in.PaymentStatus != "" {
		if !paymentStatuses[in.PaymentStatus] {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid paymentStatus")
			return
		}
		set["paymentStatus"] = in.PaymentStatus
	}

	res, err := db.BookingCollection.UpdateOne(r.Context(), bson.M{"bookingid": bookingID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	var booking models.Booking
	if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingid": bookingID}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	utils.RespondWithData(w, http.StatusOK, booking)
}

// VerifyTicket resolves a scanned QR payload to its booking. Used by
// gate staff; admin only.
func VerifyTicket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	code, ok := VerifyTicketPayload(in.Payload)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Ticket signature is invalid")
		return
	}

	var booking models.Booking
	if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingCode": code}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No booking for this ticket")
		return
	}

	valid := booking.BookingStatus == models.BookingConfirmed && booking.PaymentStatus == models.PaymentPaid
	utils.RespondWithData(w, http.StatusOK, utils.M{
		"booking": booking,
		"valid":   valid,
	})
}
