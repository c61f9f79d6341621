package bookings

import (
	"fmt"
	"time"

	"cinebook/utils"
)

// newBookingCode builds a human-readable ticket code: the CB prefix,
// the booking date and four random digits. Collisions on the same day
// are possible, so inserts retry under a unique index.
func newBookingCode(t time.Time) string {
	return fmt.Sprintf("CB%s%s", t.Format("20060102"), utils.GenerateRandomDigitString(4))
}
