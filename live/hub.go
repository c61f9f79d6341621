package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// SeatEvent is broadcast to every client watching a showtime whenever
// seats are booked or released.
type SeatEvent struct {
	Action     string    `json:"action"`
	ShowtimeID string    `json:"showtimeid"`
	Seats      []string  `json:"seats"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	ActionBooked   = "booked"
	ActionReleased = "released"
)

// Hub fans seat events out to clients grouped by showtime.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	done    chan struct{}
	stopped bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
		done:  make(chan struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	if h.rooms[c.showtimeID] == nil {
		h.rooms[c.showtimeID] = make(map[*Client]bool)
	}
	h.rooms[c.showtimeID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[c.showtimeID]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.rooms, c.showtimeID)
		}
	}
}

// Broadcast sends a seat event to everyone watching the showtime.
// Slow clients are dropped rather than allowed to block the hub.
func (h *Hub) Broadcast(event SeatEvent) {
	event.Timestamp = time.Now()
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[live] marshal event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[event.ShowtimeID] {
		select {
		case c.send <- payload:
		default:
			delete(h.rooms[event.ShowtimeID], c)
			close(c.send)
		}
	}
	if len(h.rooms[event.ShowtimeID]) == 0 {
		delete(h.rooms, event.ShowtimeID)
	}
}

// Watchers reports how many clients are subscribed to a showtime.
func (h *Hub) Watchers(showtimeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[showtimeID])
}

// Stop disconnects every client and rejects new registrations.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	close(h.done)
	for id, clients := range h.rooms {
		for c := range clients {
			close(c.send)
		}
		delete(h.rooms, id)
	}
}
