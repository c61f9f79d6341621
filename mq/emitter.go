package mq

import (
	"context"
	"encoding/json"
	"log"

	"cinebook/rdx"
)

const eventsChannel = "cinebook-events"

// Index represents a domain event emitted on the Redis event bus.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// Emit publishes an event to Redis. Failures are logged, never fatal:
// the write that triggered the event has already been persisted.
func Emit(eventName string, content Index) {
	payload := struct {
		Event string `json:"event"`
		Index
	}{Event: eventName, Index: content}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartEventWorker consumes the event channel and keeps per-movie booking
// counters in Redis, which back the "trending" data on the client.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for events...")

	for msg := range ch {
		var event struct {
			Event string `json:"event"`
			Index
		}
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}

		switch event.Event {
		case "booking-created":
			if event.ItemType == "movie" && event.ItemId != "" {
				if _, err := rdx.RdxIncr("bookings:count:movie:" + event.ItemId); err != nil {
					log.Printf("[EventWorker] counter incr failed: %v", err)
				}
			}
		case "booking-cancelled":
			if event.ItemType == "movie" && event.ItemId != "" {
				if err := rdx.Conn.Decr(ctx, "bookings:count:movie:"+event.ItemId).Err(); err != nil {
					log.Printf("[EventWorker] counter decr failed: %v", err)
				}
			}
		default:
			// catalog events are informational for now
			log.Printf("[EventWorker] %s %s/%s", event.Event, event.EntityType, event.EntityId)
		}
	}
}
