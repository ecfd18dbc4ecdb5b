package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const eventChannel = "community:events"

// envelope is the Redis wire format; community_id routes the event to the
// right sessions on each subscribing instance.
type envelope struct {
	CommunityID string `json:"community_id"`
	Event       Event  `json:"event"`
}

// Broadcaster publishes events through Redis pub/sub so every instance's hub
// sees them. With a nil Redis client it degrades to single-instance delivery
// straight into the local hub.
type Broadcaster struct {
	hub *Hub
	rdb *redis.Client
}

func NewBroadcaster(hub *Hub, rdb *redis.Client) *Broadcaster {
	return &Broadcaster{hub: hub, rdb: rdb}
}

func (b *Broadcaster) Publish(communityID string, event Event) {
	if b.rdb == nil {
		b.hub.BroadcastJSON(communityID, event)
		return
	}

	payload, err := json.Marshal(envelope{CommunityID: communityID, Event: event})
	if err != nil {
		slog.Error("failed to marshal event envelope", "error", err)
		return
	}

	if err := b.rdb.Publish(context.Background(), eventChannel, payload).Err(); err != nil {
		slog.Error("failed to publish event", "error", err, "type", event.Type)
		// Redis down: deliver locally so this instance's sessions still update.
		b.hub.BroadcastJSON(communityID, event)
	}
}

// Run subscribes to the event channel and forwards messages into the local
// hub. Blocks until ctx is cancelled; run it in its own goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	sub := b.rdb.Subscribe(ctx, eventChannel)
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
				slog.Error("failed to decode event envelope", "error", err)
				continue
			}
			b.hub.BroadcastJSON(env.CommunityID, env.Event)
		}
	}
}
