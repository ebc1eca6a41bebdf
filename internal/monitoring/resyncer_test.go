package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct{ calls atomic.Int32 }

func (p *countingPublisher) Publish(context.Context) error {
	p.calls.Add(1)
	return nil
}

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func TestNewResyncerRejectsBadSchedule(t *testing.T) {
	_, err := NewResyncer("every so often", &countingPublisher{}, fixedClients(1))
	require.Error(t, err)
}

func TestResyncSkipsWithoutClients(t *testing.T) {
	publisher := &countingPublisher{}
	r, err := NewResyncer("@every 5m", publisher, fixedClients(0))
	require.NoError(t, err)

	r.Resync(context.Background())
	assert.Equal(t, int32(0), publisher.calls.Load())
}

func TestResyncPublishes(t *testing.T) {
	publisher := &countingPublisher{}
	r, err := NewResyncer("@every 5m", publisher, fixedClients(3))
	require.NoError(t, err)

	r.Resync(context.Background())
	assert.Equal(t, int32(1), publisher.calls.Load())
}

func TestRunFiresOnSchedule(t *testing.T) {
	publisher := &countingPublisher{}
	r, err := NewResyncer("@every 1s", publisher, fixedClients(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return publisher.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("resyncer did not stop")
	}
}
