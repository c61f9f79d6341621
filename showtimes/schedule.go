package showtimes

import (
	"context"
	"time"

	"cinebook/db"

	"go.mongodb.org/mongo-driver/bson"
)

// turnoverMinutes is the cleaning gap reserved after every screening.
const turnoverMinutes = 15

// ScreeningEnd computes when a room becomes free again for a showtime
// starting at start for a movie of the given duration.
func ScreeningEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes+turnoverMinutes) * time.Minute)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back screenings where one ends
// exactly as the next starts do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// roomConflict checks whether an active showtime already occupies the
// room during [start, end), excluding excludeID when updating. The
// check-then-insert is not atomic; scheduling is an admin-only,
// low-frequency operation, so the race is accepted.
func roomConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	filter := bson.M{
		"roomid":    roomID,
		"isActive":  true,
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["showtimeid"] = bson.M{"$ne": excludeID}
	}

	count, err := db.ShowtimeCollection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
