package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "lostfound:events"

type envelope struct {
	UserID string `json:"user_id"`
	Event  Event  `json:"event"`
}

// RedisBridge fans events out across instances through redis pub/sub. Emit
// publishes; Run subscribes and hands incoming events to the local hub, so
// a user connected to any instance still receives them. Replaces direct hub
// emission when configured — delivery always goes through the broker to
// avoid double-sending to local sockets.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisBridge(client *redis.Client, hub *Hub) *RedisBridge {
	return &RedisBridge{client: client, hub: hub}
}

func (b *RedisBridge) Emit(ctx context.Context, userID string, ev Event) {
	payload, err := json.Marshal(envelope{UserID: userID, Event: ev})
	if err != nil {
		log.Printf("marshal event: %v", err)
		return
	}
	if err := b.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		log.Printf("publish event: %v", err)
	}
}

// Run blocks delivering subscribed events to the local hub until ctx ends.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, eventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("decode event: %v", err)
				continue
			}
			b.hub.Emit(ctx, env.UserID, env.Event)
		}
	}
}
