package live

import (
	"encoding/json"
	"testing"
)

func newTestClient(hub *Hub, showtimeID string) *Client {
	return &Client{
		hub:        hub,
		showtimeID: showtimeID,
		send:       make(chan []byte, 16),
	}
}

func TestHubBroadcastReachesOnlySameShowtime(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	a := newTestClient(hub, "s1")
	b := newTestClient(hub, "s1")
	other := newTestClient(hub, "s2")
	hub.register(a)
	hub.register(b)
	hub.register(other)

	hub.Broadcast(SeatEvent{Action: ActionBooked, ShowtimeID: "s1", Seats: []string{"A1", "A2"}})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			var ev SeatEvent
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if ev.Action != ActionBooked || len(ev.Seats) != 2 {
				t.Errorf("unexpected event: %+v", ev)
			}
			if ev.Timestamp.IsZero() {
				t.Error("timestamp not set on broadcast")
			}
		default:
			t.Fatal("client in showtime room received nothing")
		}
	}

	select {
	case <-other.send:
		t.Fatal("client in a different showtime received the event")
	default:
	}
}

func TestHubUnregisterRemovesClient(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	c := newTestClient(hub, "s1")
	hub.register(c)
	if hub.Watchers("s1") != 1 {
		t.Fatalf("watchers = %d, want 1", hub.Watchers("s1"))
	}

	hub.unregister(c)
	if hub.Watchers("s1") != 0 {
		t.Fatalf("watchers after unregister = %d, want 0", hub.Watchers("s1"))
	}

	if _, ok := <-c.send; ok {
		t.Error("send channel still open after unregister")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	slow := &Client{hub: hub, showtimeID: "s1", send: make(chan []byte)}
	hub.register(slow)

	hub.Broadcast(SeatEvent{Action: ActionReleased, ShowtimeID: "s1", Seats: []string{"B4"}})

	if hub.Watchers("s1") != 0 {
		t.Fatalf("slow client not dropped, watchers = %d", hub.Watchers("s1"))
	}
}

func TestHubStopRejectsNewClients(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	c := newTestClient(hub, "s1")
	hub.register(c)
	if hub.Watchers("s1") != 0 {
		t.Fatal("register succeeded after Stop")
	}
}
