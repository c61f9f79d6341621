package cinemas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/seatmap"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type roomInput struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Rows        int      `json:"rows"`
	SeatsPerRow int      `json:"seatsPerRow"`
	VIPRows     []string `json:"vipRows"`
	CoupleRows  []string `json:"coupleRows"`
	IsActive    *bool    `json:"isActive"`
}

// buildLayout validates room geometry and returns the layout error
// message suitable for the client, or the layout on success.
func buildLayout(rows, seatsPerRow int, vipRows, coupleRows []string) (*seatmap.Layout, string) {
	layout, err := seatmap.NewLayout(rows, seatsPerRow, vipRows, coupleRows)
	if err != nil {
		var cfgErr *seatmap.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, cfgErr.Reason
		}
		return nil, "Invalid room configuration"
	}
	return layout, ""
}

func CreateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cinemaID := ps.ByName("id")

	var cinema models.Cinema
	if err := db.CinemaCollection.FindOne(r.Context(), bson.M{"cinemaid": cinemaID}).Decode(&cinema); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cinema not found")
		return
	}

	var in roomInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Room name is required")
		return
	}

	layout, msg := buildLayout(in.Rows, in.SeatsPerRow, in.VIPRows, in.CoupleRows)
	if layout == nil {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	room := models.Room{
		RoomID:      "r" + utils.GenerateID(10),
		CinemaID:    cinemaID,
		Name:        in.Name,
		Type:        in.Type,
		Rows:        in.Rows,
		SeatsPerRow: in.SeatsPerRow,
		TotalSeats:  layout.TotalSeats(),
		VIPRows:     in.VIPRows,
		CoupleRows:  in.CoupleRows,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsActive != nil {
		room.IsActive = *in.IsActive
	}

	if _, err := db.RoomCollection.InsertOne(r.Context(), room); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, room)
}

func GetRooms(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cinemaID := ps.ByName("id")

	cursor, err := db.RoomCollection.Find(r.Context(), bson.M{"cinemaid": cinemaID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	defer cursor.Close(r.Context())

	rooms := []models.Room{}
	if err := cursor.All(r.Context(), &rooms); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	utils.RespondWithList(w, http.StatusOK, rooms)
}

func GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var room models.Room
	err := db.RoomCollection.FindOne(r.Context(), bson.M{"roomid": ps.ByName("roomId")}).Decode(&room)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.RespondWithData(w, http.StatusOK, room)
}

// GetRoomSeatMap renders the room geometry as a row-major seat grid.
func GetRoomSeatMap(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var room models.Room
	err := db.RoomCollection.FindOne(r.Context(), bson.M{"roomid": ps.ByName("roomId")}).Decode(&room)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found")
		return
	}

	layout, msg := buildLayout(room.Rows, room.SeatsPerRow, room.VIPRows, room.CoupleRows)
	if layout == nil {
		utils.RespondWithError(w, http.StatusInternalServerError, msg)
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{
		"roomid":     room.RoomID,
		"name":       room.Name,
		"totalSeats": layout.TotalSeats(),
		"seatMap":    layout.SeatMap(),
	})
}

func UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomId")

	var room models.Room
	if err := db.RoomCollection.FindOne(r.Context(), bson.M{"roomid": roomID}).Decode(&room); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found")
		return
	}

	var in roomInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if in.Rows > 0 {
		room.Rows = in.Rows
	}
	if in.SeatsPerRow > 0 {
		room.SeatsPerRow = in.SeatsPerRow
	}
	if in.VIPRows != nil {
		room.VIPRows = in.VIPRows
	}
	if in.CoupleRows != nil {
		room.CoupleRows = in.CoupleRows
	}

	layout, msg := buildLayout(room.Rows, room.SeatsPerRow, room.VIPRows, room.CoupleRows)
	if layout == nil {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	set := bson.M{
		"rows":        room.Rows,
		"seatsPerRow": room.SeatsPerRow,
		"totalSeats":  layout.TotalSeats(),
		"vipRows":     room.VIPRows,
		"coupleRows":  room.CoupleRows,
		"updatedAt":   time.Now(),
	}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Type != "" {
		set["type"] = in.Type
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}

	if _, err := db.RoomCollection.UpdateOne(r.Context(), bson.M{"roomid": roomID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update room")
		return
	}

	if err := db.RoomCollection.FindOne(r.Context(), bson.M{"roomid": roomID}).Decode(&room); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load room")
		return
	}
	utils.RespondWithData(w, http.StatusOK, room)
}

// DeleteRoom refuses to delete a room that still has upcoming active
// showtimes scheduled in it.
func DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomId")
	ctx := context.TODO()

	count, err := db.ShowtimeCollection.CountDocuments(ctx, bson.M{
		"roomid":   roomID,
		"isActive": true,
		"endTime":  bson.M{"$gt": time.Now()},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check showtimes")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Room still has upcoming showtimes")
		return
	}

	res, err := db.RoomCollection.DeleteOne(ctx, bson.M{"roomid": roomID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Room not found")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Room deleted")
}
