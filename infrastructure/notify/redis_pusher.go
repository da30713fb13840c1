package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPusher publishes realtime events over redis pub/sub. The websocket
// gateway subscribes to the room channels and forwards to connected
// clients; a room with no subscribers is a silent no-op, which is exactly
// the best-effort contract.
type RedisPusher struct {
	client *redis.Client
}

func NewRedisPusher(addr, password string, db int) *RedisPusher {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &RedisPusher{client: client}
}

// NewRedisPusherWithClient wraps an existing client (tests, shared pools).
func NewRedisPusherWithClient(client *redis.Client) *RedisPusher {
	return &RedisPusher{client: client}
}

// envelope is the wire format on the pub/sub channel.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Push publishes the event to the room channel.
func (p *RedisPusher) Push(ctx context.Context, room, event string, payload interface{}) error {
	body, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}
	if err := p.client.Publish(ctx, room, body).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", room, err)
	}
	return nil
}

// Ping verifies connectivity, used by the health endpoint.
func (p *RedisPusher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (p *RedisPusher) Close() error {
	return p.client.Close()
}

var _ Pusher = (*RedisPusher)(nil)
