package genres

import (
	"encoding/json"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type genreInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func CreateGenre(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in genreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Genre name is required")
		return
	}

	now := time.Now()
	genre := models.Genre{
		GenreID:     "g" + utils.GenerateID(10),
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.GenreCollection.InsertOne(r.Context(), genre); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Genre already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create genre")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, genre)
}

func GetGenres(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.GenreCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch genres")
		return
	}
	defer cursor.Close(r.Context())

	genres := []models.Genre{}
	if err := cursor.All(r.Context(), &genres); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch genres")
		return
	}
	utils.RespondWithList(w, http.StatusOK, genres)
}

// GetGenre resolves a genre by id or slug.
func GetGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("id")

	var genre models.Genre
	err := db.GenreCollection.FindOne(r.Context(), bson.M{
		"$or": []bson.M{{"genreid": key}, {"slug": key}},
	}).Decode(&genre)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}
	utils.RespondWithData(w, http.StatusOK, genre)
}

func UpdateGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	genreID := ps.ByName("id")

	var in genreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if in.Name != "" {
		set["name"] = in.Name
		set["slug"] = Slugify(in.Name)
	}
	if in.Description != "" {
		set["description"] = in.Description
	}

	res, err := db.GenreCollection.UpdateOne(r.Context(), bson.M{"genreid": genreID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Genre name already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update genre")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}

	var genre models.Genre
	if err := db.GenreCollection.FindOne(r.Context(), bson.M{"genreid": genreID}).Decode(&genre); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load genre")
		return
	}
	utils.RespondWithData(w, http.StatusOK, genre)
}

func DeleteGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.GenreCollection.DeleteOne(r.Context(), bson.M{"genreid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete genre")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Genre deleted")
}
