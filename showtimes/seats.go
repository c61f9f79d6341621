package showtimes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/rdx"
	"cinebook/seatmap"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const seatCacheTTL = 5 * time.Second

type seatView struct {
	SeatNumber string `json:"seatNumber"`
	SeatType   string `json:"seatType"`
	Price      int    `json:"price"`
	IsBooked   bool   `json:"isBooked"`
}

type seatMapView struct {
	ShowtimeID     string             `json:"showtimeid"`
	StartTime      time.Time          `json:"startTime"`
	Price          seatmap.PriceTable `json:"price"`
	TotalSeats     int                `json:"totalSeats"`
	AvailableSeats int                `json:"availableSeats"`
	Rows           [][]seatView       `json:"rows"`
}

// GetShowtimeSeats renders the full seat grid for a showtime with live
// booked flags. Snapshots are cached briefly in Redis since this is the
// hottest read during on-sale peaks.
func GetShowtimeSeats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	showtimeID := ps.ByName("id")

	if cached, err := rdx.RdxGet(seatCacheKey(showtimeID)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx := r.Context()

	var showtime models.Showtime
	if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": showtimeID}).Decode(&showtime); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
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

	booked := make(map[string]bool, len(showtime.BookedSeats))
	for _, s := range showtime.BookedSeats {
		booked[s] = true
	}

	grid := layout.SeatMap()
	rows := make([][]seatView, len(grid))
	for i, row := range grid {
		views := make([]seatView, len(row))
		for j, seat := range row {
			views[j] = seatView{
				SeatNumber: seat.Label,
				SeatType:   seat.Category,
				Price:      layout.PriceFor(seat.Label, showtime.Price),
				IsBooked:   booked[seat.Label],
			}
		}
		rows[i] = views
	}

	view := seatMapView{
		ShowtimeID:     showtime.ShowtimeID,
		StartTime:      showtime.StartTime,
		Price:          showtime.Price,
		TotalSeats:     layout.TotalSeats(),
		AvailableSeats: layout.TotalSeats() - len(showtime.BookedSeats),
		Rows:           rows,
	}

	envelope := utils.M{"success": true, "data": view}
	payload, err := json.Marshal(envelope)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render seat map")
		return
	}

	if err := rdx.SetWithExpiry(seatCacheKey(showtimeID), string(payload), seatCacheTTL); err != nil {
		log.Printf("seat snapshot cache failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
