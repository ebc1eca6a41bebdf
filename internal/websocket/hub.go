package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrHubNotRunning is returned when messages are offered to a hub whose Run loop
// has not started or has already stopped.
var ErrHubNotRunning = errors.New("websocket hub is not running")

// Hub maintains the set of active clients and broadcasts messages to them.
// The client set is owned by the Run goroutine; everything else talks to it
// through channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Encoded messages for every client.
	broadcast chan []byte

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	running atomic.Bool
	count   atomic.Int64
	done    chan struct{}
}

// NewHub creates a new Hub. Run must be started before the first Broadcast.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop and blocks until ctx is done.
// On exit every remaining client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	if !h.running.CompareAndSwap(false, true) {
		log.Warn().Msg("Websocket hub is already running")
		return
	}
	defer func() {
		h.running.Store(false)
		close(h.done)
		for client := range h.clients {
			h.drop(client)
		}
		log.Info().Msg("Websocket hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Info().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.drop(client)
					log.Warn().Str("client_id", client.ID).Msg("Dropped slow websocket client")
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.count.Store(int64(len(h.clients)))
}

// Running reports whether the Run loop is active.
func (h *Hub) Running() bool {
	return h.running.Load()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) error {
	if !h.Running() {
		return ErrHubNotRunning
	}
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubNotRunning
	}
}

// Unregister removes a client from the hub. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast encodes the event once and queues it for every connected client.
func (h *Hub) Broadcast(ctx context.Context, event string, payload any) error {
	data, err := Encode(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", event, err)
	}
	return h.Deliver(ctx, data)
}

// Deliver queues an already encoded message for every connected client. It
// gives up when ctx is done before the Run loop accepts the message.
func (h *Hub) Deliver(ctx context.Context, data []byte) error {
	if !h.Running() {
		return ErrHubNotRunning
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}
