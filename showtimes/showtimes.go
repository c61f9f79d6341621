package showtimes

import (
	"encoding/json"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/mq"
	"cinebook/rdx"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type showtimeInput struct {
	MovieID   string          `json:"movieid"`
	CinemaID  string          `json:"cinemaid"`
	RoomID    string          `json:"roomid"`
	StartTime string          `json:"startTime"`
	Price     *seatPriceInput `json:"price"`
	IsActive  *bool           `json:"isActive"`
}

type seatPriceInput struct {
	Standard int `json:"standard"`
	VIP      int `json:"vip"`
	Couple   int `json:"couple"`
}

func CreateShowtime(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in showtimeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.MovieID == "" || in.CinemaID == "" || in.RoomID == "" || in.StartTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "movieid, cinemaid, roomid and startTime are required")
		return
	}
	if in.Price == nil || in.Price.Standard <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "A positive standard price is required")
		return
	}

	start, err := time.Parse(time.RFC3339, in.StartTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime must be RFC 3339")
		return
	}
	if start.Before(time.Now()) {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime must be in the future")
		return
	}

	ctx := r.Context()

	var movie models.Movie
	if err := db.MovieCollection.FindOne(ctx, bson.M{"movieid": in.MovieID}).Decode(&movie); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}

	var room models.Room
	if err := db.RoomCollection.FindOne(ctx, bson.M{"roomid": in.RoomID, "cinemaid": in.CinemaID}).Decode(&room); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found in this cinema")
		return
	}
	if !room.IsActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Room is not active")
		return
	}

	end := ScreeningEnd(start, movie.Duration)

	busy, err := roomConflict(ctx, in.RoomID, start, end, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check room schedule")
		return
	}
	if busy {
		utils.RespondWithError(w, http.StatusConflict, "Room already has a showtime in this slot")
		return
	}

	now := time.Now()
	showtime := models.Showtime{
		ShowtimeID:  "s" + utils.GenerateID(10),
		MovieID:     in.MovieID,
		CinemaID:    in.CinemaID,
		RoomID:      in.RoomID,
		StartTime:   start,
		EndTime:     end,
		BookedSeats: []string{},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	showtime.Price.Standard = in.Price.Standard
	showtime.Price.VIP = in.Price.VIP
	showtime.Price.Couple = in.Price.Couple
	if in.IsActive != nil {
		showtime.IsActive = *in.IsActive
	}

	if _, err := db.ShowtimeCollection.InsertOne(ctx, showtime); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create showtime")
		return
	}

	mq.Emit("showtime-created", mq.Index{EntityType: "showtime", EntityId: showtime.ShowtimeID, Method: "POST", ItemId: in.MovieID, ItemType: "movie"})
	utils.RespondWithData(w, http.StatusCreated, showtime)
}

// UpdateShowtime reschedules or reprices a showtime. Rescheduling is
// refused once seats have been sold.
func UpdateShowtime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	showtimeID := ps.ByName("id")
	ctx := r.Context()

	var existing models.Showtime
	if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": showtimeID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
		return
	}

	var in showtimeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}

	if in.StartTime != "" || in.RoomID != "" {
		if len(existing.BookedSeats) > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Cannot reschedule a showtime with sold seats")
			return
		}

		start := existing.StartTime
		if in.StartTime != "" {
			parsed, err := time.Parse(time.RFC3339, in.StartTime)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "startTime must be RFC 3339")
				return
			}
			if parsed.Before(time.Now()) {
				utils.RespondWithError(w, http.StatusBadRequest, "startTime must be in the future")
				return
			}
			start = parsed
		}

		roomID := existing.RoomID
		if in.RoomID != "" {
			var room models.Room
			if err := db.RoomCollection.FindOne(ctx, bson.M{"roomid": in.RoomID}).Decode(&room); err != nil {
				utils.RespondWithError(w, http.StatusNotFound, "Room not found")
				return
			}
			if !room.IsActive {
				utils.RespondWithError(w, http.StatusBadRequest, "Room is not active")
				return
			}
			roomID = in.RoomID
			set["roomid"] = roomID
			set["cinemaid"] = room.CinemaID
		}

		var movie models.Movie
		if err := db.MovieCollection.FindOne(ctx, bson.M{"movieid": existing.MovieID}).Decode(&movie); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load movie")
			return
		}
		end := ScreeningEnd(start, movie.Duration)

		busy, err := roomConflict(ctx, roomID, start, end, showtimeID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check room schedule")
			return
		}
		if busy {
			utils.RespondWithError(w, http.StatusConflict, "Room already has a showtime in this slot")
			return
		}

		set["startTime"] = start
		set["endTime"] = end
	}

	if in.Price != nil {
		if in.Price.Standard <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "A positive standard price is required")
			return
		}
		set["price"] = bson.M{
			"standard": in.Price.Standard,
			"vip":      in.Price.VIP,
			"couple":   in.Price.Couple,
		}
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}

	if _, err := db.ShowtimeCollection.UpdateOne(ctx, bson.M{"showtimeid": showtimeID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update showtime")
		return
	}

	InvalidateSeatCache(showtimeID)

	var updated models.Showtime
	if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": showtimeID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load showtime")
		return
	}
	utils.RespondWithData(w, http.StatusOK, updated)
}

// DeleteShowtime deactivates a showtime with bookings instead of
// removing it, so existing tickets keep resolving.
func DeleteShowtime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	showtimeID := ps.ByName("id")
	ctx := r.Context()

	count, err := db.BookingCollection.CountDocuments(ctx, bson.M{
		"showtimeid":    showtimeID,
		"bookingStatus": bson.M{"$in": []string{models.BookingPending, models.BookingConfirmed}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check bookings")
		return
	}

	if count > 0 {
		res, err := db.ShowtimeCollection.UpdateOne(ctx,
			bson.M{"showtimeid": showtimeID},
			bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to deactivate showtime")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
			return
		}
		InvalidateSeatCache(showtimeID)
		utils.RespondWithMessage(w, http.StatusOK, "Showtime has bookings and was deactivated instead of deleted")
		return
	}

	res, err := db.ShowtimeCollection.DeleteOne(ctx, bson.M{"showtimeid": showtimeID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete showtime")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
		return
	}

	InvalidateSeatCache(showtimeID)
	utils.RespondWithMessage(w, http.StatusOK, "Showtime deleted")
}

// GetShowtimes lists showtimes filtered by movie, cinema and day.
func GetShowtimes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := bson.M{"isActive": true}

	if movieID := q.Get("movieid"); movieID != "" {
		filter["movieid"] = movieID
	}
	if cinemaID := q.Get("cinemaid"); cinemaID != "" {
		filter["cinemaid"] = cinemaID
	}
	if day := q.Get("date"); day != "" {
		dayStart, err := time.Parse("2006-01-02", day)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter["startTime"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}
	} else if q.Get("upcoming") != "false" {
		filter["startTime"] = bson.M{"$gte": time.Now()}
	}

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := db.ShowtimeCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch showtimes")
		return
	}
	defer cursor.Close(r.Context())

	showtimes := []models.Showtime{}
	if err := cursor.All(r.Context(), &showtimes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch showtimes")
		return
	}
	utils.RespondWithList(w, http.StatusOK, showtimes)
}

func GetShowtime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var showtime models.Showtime
	if err := db.ShowtimeCollection.FindOne(ctx, bson.M{"showtimeid": ps.ByName("id")}).Decode(&showtime); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
		return
	}

	detail := utils.M{"showtime": showtime}

	var movie models.Movie
	if err := db.MovieCollection.FindOne(ctx, bson.M{"movieid": showtime.MovieID}).Decode(&movie); err == nil {
		detail["movie"] = movie
	}
	var cinema models.Cinema
	if err := db.CinemaCollection.FindOne(ctx, bson.M{"cinemaid": showtime.CinemaID}).Decode(&cinema); err == nil {
		detail["cinema"] = cinema
	}
	var room models.Room
	if err := db.RoomCollection.FindOne(ctx, bson.M{"roomid": showtime.RoomID}).Decode(&room); err == nil {
		detail["room"] = room
	}

	utils.RespondWithData(w, http.StatusOK, detail)
}

func seatCacheKey(showtimeID string) string {
	return "showtime:seats:" + showtimeID
}

// InvalidateSeatCache drops the cached seat snapshot after any write
// that changes availability.
func InvalidateSeatCache(showtimeID string) {
	_ = rdx.RdxDel(seatCacheKey(showtimeID))
}
