package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const resyncTimeout = 30 * time.Second

// Publisher recomputes and broadcasts the explorer snapshot.
type Publisher interface {
	Publish(ctx context.Context) error
}

// ClientCounter reports how many websocket clients are connected locally.
type ClientCounter interface {
	ClientCount() int
}

// Resyncer periodically rebroadcasts the full snapshot so clients that missed
// an update converge.
type Resyncer struct {
	schedule  string
	publisher Publisher
	clients   ClientCounter
}

// NewResyncer creates a resyncer for a cron schedule such as "@every 5m" or "*/10 * * * *".
func NewResyncer(schedule string, publisher Publisher, clients ClientCounter) (*Resyncer, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid resync schedule %q: %w", schedule, err)
	}
	return &Resyncer{schedule: schedule, publisher: publisher, clients: clients}, nil
}

// Run schedules resyncs until ctx is done, then waits for a running resync to finish.
func (r *Resyncer) Run(ctx context.Context) {
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() { r.Resync(ctx) }); err != nil {
		log.Error().Err(err).Str("schedule", r.schedule).Msg("Failed to schedule resync")
		return
	}

	log.Info().Str("schedule", r.schedule).Msg("Starting snapshot resyncer")
	c.Start()
	<-ctx.Done()

	<-c.Stop().Done()
	log.Info().Msg("Stopping snapshot resyncer")
}

// Resync publishes one snapshot when any client is connected.
func (r *Resyncer) Resync(ctx context.Context) {
	clients := r.clients.ClientCount()
	log.Debug().Int("total_clients", clients).Msg("Websocket clients connected")
	if clients == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, resyncTimeout)
	defer cancel()
	if err := r.publisher.Publish(ctx); err != nil {
		log.Error().Err(err).Msg("Periodic snapshot resync failed")
		return
	}
	log.Info().Int("total_clients", clients).Msg("Resynced explorer snapshot")
}
