package bookings

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"cinebook/db"
	"cinebook/globals"
	"cinebook/middleware"
	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadTicket renders a booking as a printable PDF with an embedded
// QR code for gate scanning.
func DownloadTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	ctx := r.Context()

	var booking models.Booking
	if err := db.BookingCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if booking.UserID != userID && !middleware.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only download your own tickets")
		return
	}
	if booking.BookingStatus == models.BookingCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "Booking is cancelled")
		return
	}

	var showtime models.Showtime
	var movie models.Movie
	var cinema models.Cinema
	var room models.Room
	if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": booking.ShowtimeID}).Decode(&showtime); err == nil {
		db.MovieCollection.FindOne(ctx, bson.M{"movieid": showtime.MovieID}).Decode(&movie)
		db.CinemaCollection.FindOne(ctx, bson.M{"cinemaid": showtime.CinemaID}).Decode(&cinema)
		db.RoomCollection.FindOne(ctx, bson.M{"roomid": showtime.RoomID}).Decode(&room)
	}

	qrPNG, err := qrcode.Encode(booking.QRCode, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	seats := make([]string, 0, len(booking.Seats))
	for _, s := range booking.Seats {
		seats = append(seats, s.SeatNumber)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "CineBook", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Movie Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Code", booking.BookingCode)
	if movie.Title != "" {
		line("Movie", movie.Title)
	}
	if cinema.Name != "" {
		line("Cinema", cinema.Name)
	}
	if room.Name != "" {
		line("Room", room.Name)
	}
	if !showtime.StartTime.IsZero() {
		line("Time", showtime.StartTime.Format("15:04, 02 Jan 2006"))
	}
	line("Seats", strings.Join(seats, ", "))
	line("Total", fmt.Sprintf("%d VND", booking.TotalPrice))
	line("Payment", booking.PaymentMethod)

	pdf.Ln(4)
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", (148-40)/2, pdf.GetY(), 40, 40, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetY(pdf.GetY() + 44)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Present this QR code at the entrance.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", booking.BookingCode))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
