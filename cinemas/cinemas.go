package cinemas

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/mq"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cinemaInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	IsActive *bool  `json:"isActive"`
}

func CreateCinema(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in cinemaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.Name == "" || in.Address == "" || in.City == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, address and city are required")
		return
	}

	now := time.Now()
	cinema := models.Cinema{
		CinemaID:  "c" + utils.GenerateID(10),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Phone:     in.Phone,
		Email:     in.Email,
		Image:     in.Image,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsActive != nil {
		cinema.IsActive = *in.IsActive
	}

	if _, err := db.CinemaCollection.InsertOne(r.Context(), cinema); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create cinema")
		return
	}

	mq.Emit("cinema-created", mq.Index{EntityType: "cinema", EntityId: cinema.CinemaID, Method: "POST"})
	utils.RespondWithData(w, http.StatusCreated, cinema)
}

// GetCinemas lists cinemas, optionally filtered by city or name search.
func GetCinemas(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := bson.M{}
	if city := q.Get("city"); city != "" {
		filter["city"] = bson.M{"$regex": primitive.Regex{Pattern: city, Options: "i"}}
	}
	if search := q.Get("search"); search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
	}
	if q.Get("active") == "true" {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.CinemaCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cinemas")
		return
	}
	defer cursor.Close(r.Context())

	cinemas := []models.Cinema{}
	if err := cursor.All(r.Context(), &cinemas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cinemas")
		return
	}
	utils.RespondWithList(w, http.StatusOK, cinemas)
}

func GetCinema(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var cinema models.Cinema
	err := db.CinemaCollection.FindOne(r.Context(), bson.M{"cinemaid": ps.ByName("id")}).Decode(&cinema)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cinema not found")
		return
	}
	utils.RespondWithData(w, http.StatusOK, cinema)
}

func UpdateCinema(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cinemaID := ps.ByName("id")

	var in cinemaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Address != "" {
		set["address"] = in.Address
	}
	if in.City != "" {
		set["city"] = in.City
	}
	if in.Phone != "" {
		set["phone"] = in.Phone
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if in.Image != "" {
		set["image"] = in.Image
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}

	res, err := db.CinemaCollection.UpdateOne(r.Context(), bson.M{"cinemaid": cinemaID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cinema")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cinema not found")
		return
	}

	var cinema models.Cinema
	if err := db.CinemaCollection.FindOne(r.Context(), bson.M{"cinemaid": cinemaID}).Decode(&cinema); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cinema")
		return
	}

	mq.Emit("cinema-updated", mq.Index{EntityType: "cinema", EntityId: cinemaID, Method: "PUT"})
	utils.RespondWithData(w, http.StatusOK, cinema)
}

// DeleteCinema removes a cinema and every room that belongs to it.
func DeleteCinema(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cinemaID := ps.ByName("id")
	ctx := context.TODO()

	res, err := db.CinemaCollection.DeleteOne(ctx, bson.M{"cinemaid": cinemaID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete cinema")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cinema not found")
		return
	}

	if _, err := db.RoomCollection.DeleteMany(ctx, bson.M{"cinemaid": cinemaID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Cinema deleted but room cleanup failed")
		return
	}

	mq.Emit("cinema-deleted", mq.Index{EntityType: "cinema", EntityId: cinemaID, Method: "DELETE"})
	utils.RespondWithMessage(w, http.StatusOK, "Cinema and its rooms deleted")
}
