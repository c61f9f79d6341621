package movies

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findMovies(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Movie, error) {
	cursor, err := db.MovieCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovies lists movies with optional status, genre, featured and
// search filters, newest release first.
func GetMovies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := bson.M{}

	if status := q.Get("status"); status != "" {
		filter["status"] = status
	}
	if genre := q.Get("genre"); genre != "" {
		filter["genres"] = genre
	}
	if q.Get("featured") == "true" {
		filter["isFeatured"] = true
	}
	if search := q.Get("search"); search != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
	}

	limit := int64(50)
	if l, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	skip := int64(0)
	if s, err := strconv.ParseInt(q.Get("skip"), 10, 64); err == nil && s > 0 {
		skip = s
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "releaseDate", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	movies, err := findMovies(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}

	utils.RespondWithList(w, http.StatusOK, movies)
}

// GetNowShowing returns active movies whose release date has passed.
func GetNowShowing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{
		"status":      models.MovieNowShowing,
		"releaseDate": bson.M{"$lte": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "releaseDate", Value: -1}})

	movies, err := findMovies(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}
	utils.RespondWithList(w, http.StatusOK, movies)
}

// GetComingSoon returns upcoming movies, soonest release first.
func GetComingSoon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"status": models.MovieComingSoon}
	opts := options.Find().SetSort(bson.D{{Key: "releaseDate", Value: 1}})

	movies, err := findMovies(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}
	utils.RespondWithList(w, http.StatusOK, movies)
}

func GetMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var movie models.Movie
	err := db.MovieCollection.FindOne(r.Context(), bson.M{"movieid": ps.ByName("id")}).Decode(&movie)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	utils.RespondWithData(w, http.StatusOK, movie)
}
