package live

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/models"
	"cinebook/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber watching a showtime's seat map.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	showtimeID string
	send       chan []byte
}

// ServeSeatFeed upgrades the connection and streams seat events for one
// showtime. The first frame is a snapshot of currently booked seats so
// the client can render without a second request.
func ServeSeatFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		showtimeID := ps.ByName("id")

		var showtime models.Showtime
		if err := db.ShowtimeCollection.FindOne(r.Context(), bson.M{"showtimeid": showtimeID}).Decode(&showtime); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Showtime not found")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[live] upgrade failed: %v", err)
			return
		}

		client := &Client{
			hub:        hub,
			conn:       conn,
			showtimeID: showtimeID,
			send:       make(chan []byte, 16),
		}
		hub.register(client)

		snapshot, _ := json.Marshal(utils.M{
			"action":      "snapshot",
			"showtimeid":  showtimeID,
			"bookedSeats": showtime.BookedSeats,
		})
		client.send <- snapshot

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The feed is one-way; clients only send pings.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.hub.done:
			return
		}
	}
}
