package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	p, err := NewProducer(nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestNewProducer_ClosesCleanly(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestMemory_KeepsOrder(t *testing.T) {
	var m Memory
	ctx := context.Background()

	require.NoError(t, m.Publish(ctx, TopicSession, "a", Event{Type: "login"}))
	require.NoError(t, m.Publish(ctx, TopicCart, "a", Event{Type: "cart_item_added", ProductID: 3}))

	got := m.Events()
	require.Len(t, got, 2)
	assert.Equal(t, TopicSession, got[0].Topic)
	assert.Equal(t, "cart_item_added", got[1].Event.Type)
	assert.Equal(t, 3, got[1].Event.ProductID)
}

type stalledBroker struct{}

func (stalledBroker) Publish(ctx context.Context, _, _ string, _ Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledBroker) Close() error { return nil }

func TestBounded_GivesUpAfterTimeout(t *testing.T) {
	b := NewBounded(stalledBroker{}, 20*time.Millisecond)

	start := time.Now()
	err := b.Publish(context.Background(), TopicCart, "a", Event{Type: "item_added"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBounded_PassesThrough(t *testing.T) {
	var m Memory
	b := NewBounded(&m, time.Second)

	require.NoError(t, b.Publish(context.Background(), TopicSession, "k", Event{Type: "login"}))
	require.Len(t, m.Events(), 1)
	assert.Equal(t, "k", m.Events()[0].Key)
	assert.NoError(t, b.Close())
}
