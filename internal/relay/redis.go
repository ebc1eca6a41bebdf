// Package relay fans broadcast messages out across API processes through Redis pub/sub.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/content-creator-be/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultChannel is the Redis channel shared by every process.
const DefaultChannel = "content-creator:broadcast"

const publishTimeout = 5 * time.Second

// Deliverer hands an encoded message to locally connected clients.
type Deliverer interface {
	Deliver(ctx context.Context, data []byte) error
}

// Redis publishes broadcasts to a Redis channel and forwards everything received
// on it to the local hub. Delivery is fire-and-forget.
type Redis struct {
	client  *redis.Client
	channel string
	local   Deliverer
	ready   chan struct{}
}

// Connect parses redisURL and checks the server is reachable.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// NewRedis creates a relay over client that forwards to local.
func NewRedis(client *redis.Client, local Deliverer) *Redis {
	return &Redis{
		client:  client,
		channel: DefaultChannel,
		local:   local,
		ready:   make(chan struct{}),
	}
}

// Broadcast encodes the event and publishes it for every subscribed process, this one included.
// The publish is bounded by ctx and by publishTimeout.
func (r *Redis) Broadcast(ctx context.Context, event string, payload any) error {
	data, err := websocket.Encode(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", event, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}
	return nil
}

// Ready is closed once the subscription is confirmed.
func (r *Redis) Ready() <-chan struct{} {
	return r.ready
}

// Run subscribes to the channel and forwards messages until ctx is done.
func (r *Redis) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}
	close(r.ready)
	log.Info().Str("channel", r.channel).Msg("Relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := r.local.Deliver(ctx, []byte(msg.Payload)); err != nil {
				log.Warn().Err(err).Str("channel", r.channel).Msg("Failed to deliver relayed message")
			}
		}
	}
}
