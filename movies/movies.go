package movies

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
)

var validRatings = map[string]bool{"P": true, "C13": true, "C16": true, "C18": true}

type movieInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Poster      string   `json:"poster"`
	Trailer     string   `json:"trailer"`
	Duration    int      `json:"duration"`
	ReleaseDate string   `json:"releaseDate"`
	EndDate     string   `json:"endDate"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director"`
	Actors      []string `json:"actors"`
	Language    string   `json:"language"`
	Rated       string   `json:"rated"`
	Status      string   `json:"status"`
	IsFeatured  bool     `json:"isFeatured"`
}

func (in *movieInput) validate() string {
	if in.Title == "" {
		return "Title is required"
	}
	if in.Description == "" {
		return "Description is required"
	}
	if in.Duration <= 0 {
		return "Duration must be a positive number of minutes"
	}
	if in.ReleaseDate == "" {
		return "Release date is required"
	}
	if in.Rated != "" && !validRatings[in.Rated] {
		return "Rated must be one of P, C13, C16, C18"
	}
	switch in.Status {
	case "", models.MovieComingSoon, models.MovieNowShowing, models.MovieEnded:
	default:
		return "Invalid status"
	}
	return ""
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func CreateMovie(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in movieInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if msg := in.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	release, err := parseDate(in.ReleaseDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid releaseDate")
		return
	}

	now := time.Now()
	movie := models.Movie{
		MovieID:     "m" + utils.GenerateID(10),
		Title:       in.Title,
		Description: in.Description,
		Poster:      in.Poster,
		Trailer:     in.Trailer,
		Duration:    in.Duration,
		ReleaseDate: release,
		Genres:      in.Genres,
		Director:    in.Director,
		Actors:      in.Actors,
		Language:    in.Language,
		Rated:       in.Rated,
		Status:      in.Status,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if movie.Status == "" {
		movie.Status = models.MovieComingSoon
	}
	if movie.Rated == "" {
		movie.Rated = "P"
	}
	if in.EndDate != "" {
		if end, err := parseDate(in.EndDate); err == nil {
			movie.EndDate = end
		}
	}

	if _, err := db.MovieCollection.InsertOne(r.Context(), movie); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create movie")
		return
	}

	mq.Emit("movie-created", mq.Index{EntityType: "movie", EntityId: movie.MovieID, Method: "POST"})
	utils.RespondWithData(w, http.StatusCreated, movie)
}

func UpdateMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID := ps.ByName("id")

	var in map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"title", "description", "poster", "trailer", "director", "language"} {
		if v, ok := in[field].(string); ok && v != "" {
			set[field] = v
		}
	}
	if v, ok := in["duration"].(float64); ok && v > 0 {
		set["duration"] = int(v)
	}
	if v, ok := in["rated"].(string); ok {
		if !validRatings[v] {
			utils.RespondWithError(w, http.StatusBadRequest, "Rated must be one of P, C13, C16, C18")
			return
		}
		set["rated"] = v
	}
	if v, ok := in["status"].(string); ok {
		switch v {
		case models.MovieComingSoon, models.MovieNowShowing, models.MovieEnded:
			set["status"] = v
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	if v, ok := in["genres"].([]interface{}); ok {
		genres := make([]string, 0, len(v))
		for _, g := range v {
			if s, ok := g.(string); ok {
				genres = append(genres, s)
			}
		}
		set["genres"] = genres
	}
	if v, ok := in["actors"].([]interface{}); ok {
		actors := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok {
				actors = append(actors, s)
			}
		}
		set["actors"] = actors
	}
	if v, ok := in["isFeatured"].(bool); ok {
		set["isFeatured"] = v
	}
	if v, ok := in["releaseDate"].(string); ok {
		if t, err := parseDate(v); err == nil {
			set["releaseDate"] = t
		}
	}
	if v, ok := in["endDate"].(string); ok {
		if t, err := parseDate(v); err == nil {
			set["endDate"] = t
		}
	}

	res, err := db.MovieCollection.UpdateOne(r.Context(), bson.M{"movieid": movieID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}

	var movie models.Movie
	if err := db.MovieCollection.FindOne(r.Context(), bson.M{"movieid": movieID}).Decode(&movie); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load movie")
		return
	}

	mq.Emit("movie-updated", mq.Index{EntityType: "movie", EntityId: movieID, Method: "PUT"})
	utils.RespondWithData(w, http.StatusOK, movie)
}

func DeleteMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movieID := ps.ByName("id")

	res, err := db.MovieCollection.DeleteOne(context.TODO(), bson.M{"movieid": movieID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}

	mq.Emit("movie-deleted", mq.Index{EntityType: "movie", EntityId: movieID, Method: "DELETE"})
	utils.RespondWithMessage(w, http.StatusOK, "Movie deleted")
}
