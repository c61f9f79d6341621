package jobs

import (
	"context"
	"log"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const sweepInterval = time.Hour

// Start runs the periodic maintenance sweeps until ctx is cancelled.
func Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	sweep(ctx)
	for {
		select {
		case <-ticker.C:
			sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func sweep(ctx context.Context) {
	if n, err := CompleteFinishedBookings(ctx); err != nil {
		log.Printf("[jobs] complete sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("[jobs] marked %d bookings completed", n)
	}

	if n, err := DeactivateEndedShowtimes(ctx); err != nil {
		log.Printf("[jobs] showtime sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("[jobs] deactivated %d ended showtimes", n)
	}

	if err := rdx.RdxSet("jobs:lastSweep", time.Now().Format(time.RFC3339)); err != nil {
		log.Printf("[jobs] sweep timestamp write failed: %v", err)
	}
}

// CompleteFinishedBookings marks confirmed bookings as completed once
// their showtime has ended. Bookings never become completed on read
// paths; this sweep is the only writer of that status.
func CompleteFinishedBookings(ctx context.Context) (int64, error) {
	cursor, err := db.ShowtimeCollection.Find(ctx, bson.M{
		"endTime": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var ended []string
	for cursor.Next(ctx) {
		var st models.Showtime
		if err := cursor.Decode(&st); err != nil {
			continue
		}
		ended = append(ended, st.ShowtimeID)
	}
	if len(ended) == 0 {
		return 0, nil
	}

	res, err := db.BookingCollection.UpdateMany(ctx,
		bson.M{
			"showtimeid":    bson.M{"$in": ended},
			"bookingStatus": models.BookingConfirmed,
		},
		bson.M{"$set": bson.M{
			"bookingStatus": models.BookingCompleted,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeactivateEndedShowtimes retires showtimes whose screening is over so
// they drop out of listings and booking.
func DeactivateEndedShowtimes(ctx context.Context) (int64, error) {
	res, err := db.ShowtimeCollection.UpdateMany(ctx,
		bson.M{
			"isActive": true,
			"endTime":  bson.M{"$lt": time.Now()},
		},
		bson.M{"$set": bson.M{
			"isActive":  false,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
