package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	MovieCollection    *mongo.Collection
	CinemaCollection   *mongo.Collection
	RoomCollection     *mongo.Collection
	ShowtimeCollection *mongo.Collection
	BookingCollection  *mongo.Collection
	GenreCollection    *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("cinedb")
	UserCollection = database.Collection("users")
	MovieCollection = database.Collection("movies")
	CinemaCollection = database.Collection("cinemas")
	RoomCollection = database.Collection("rooms")
	ShowtimeCollection = database.Collection("showtimes")
	BookingCollection = database.Collection("bookings")
	GenreCollection = database.Collection("genres")
}

// EnsureIndexes creates the unique and lookup indexes the handlers rely on.
// The unique bookingCode index is what makes code-collision retries work.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if err != nil {
		return err
	}

	_, err = BookingCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"bookingCode": 1},
		Options: options.Index().SetUnique(true).SetName("unique_booking_code"),
	})
	if err != nil {
		return err
	}

	_, err = GenreCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"name": 1},
			Options: options.Index().SetUnique(true).SetName("unique_genre_name"),
		},
		{
			Keys:    bson.M{"slug": 1},
			Options: options.Index().SetUnique(true).SetName("unique_genre_slug"),
		},
	})
	if err != nil {
		return err
	}

	_, err = ShowtimeCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "movieid", Value: 1}, {Key: "cinemaid", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("showtime_lookup"),
		},
		{
			Keys:    bson.D{{Key: "roomid", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("room_schedule"),
		},
	})
	if err != nil {
		return err
	}

	_, err = RoomCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"cinemaid": 1},
		Options: options.Index().SetName("rooms_by_cinema"),
	})
	return err
}
