package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	mu       sync.Mutex
	messages []string
}

func (c *captured) Deliver(_ context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, string(data))
	return nil
}

func (c *captured) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func startRelay(t *testing.T, addr string, local Deliverer) *Redis {
	t.Helper()
	client, err := Connect(context.Background(), "redis://"+addr)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	relay := NewRedis(client, local)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go relay.Run(ctx)

	select {
	case <-relay.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not subscribe")
	}
	return relay
}

func TestRelayFansOutToEveryProcess(t *testing.T) {
	s := miniredis.RunT(t)

	first := &captured{}
	second := &captured{}
	publisher := startRelay(t, s.Addr(), first)
	startRelay(t, s.Addr(), second)

	require.NoError(t, publisher.Broadcast(context.Background(), "contentUpdated", map[string]int{"n": 1}))

	for _, local := range []*captured{first, second} {
		require.Eventually(t, func() bool { return len(local.all()) == 1 }, 2*time.Second, 10*time.Millisecond)
		assert.JSONEq(t, `{"event":"contentUpdated","payload":{"n":1}}`, local.all()[0])
	}
}

func TestRelayBroadcastHonoursContext(t *testing.T) {
	s := miniredis.RunT(t)
	local := &captured{}
	publisher := startRelay(t, s.Addr(), local)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := publisher.Broadcast(ctx, "contentUpdated", map[string]int{"n": 1})
	require.ErrorIs(t, err, context.Canceled)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, local.all())
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url")
	require.Error(t, err)
}
