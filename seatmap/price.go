package seatmap

// PriceTable is a showtime's per-category pricing in VND.
type PriceTable struct {
	Standard int `json:"standard" bson:"standard"`
	VIP      int `json:"vip" bson:"vip"`
	Couple   int `json:"couple" bson:"couple"`
}

// PricedSeat is the captured price snapshot stored on a booking.
type PricedSeat struct {
	SeatNumber string `json:"seatNumber" bson:"seatNumber"`
	SeatType   string `json:"seatType" bson:"seatType"`
	Price      int    `json:"price" bson:"price"`
}

// PriceFor returns the price of one seat under a table. A tier with no
// price configured falls back to the standard price.
func (l *Layout) PriceFor(label string, table PriceTable) int {
	switch l.Category(label) {
	case CategoryVIP:
		if table.VIP > 0 {
			return table.VIP
		}
	case CategoryCouple:
		if table.Couple > 0 {
			return table.Couple
		}
	}
	return table.Standard
}

// Quote prices every requested seat and totals them. Pure; no side effects.
func (l *Layout) Quote(labels []string, table PriceTable) ([]PricedSeat, int) {
	seats := make([]PricedSeat, 0, len(labels))
	total := 0
	for _, label := range labels {
		price := l.PriceFor(label, table)
		seats = append(seats, PricedSeat{
			SeatNumber: label,
			SeatType:   l.Category(label),
			Price:      price,
		})
		total += price
	}
	return seats, total
}
