package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicSession = "session_events"
	TopicCart    = "cart_events"
)

type Event struct {
	Type       string    `json:"type"`
	InstanceID string    `json:"instance_id"`
	UserID     string    `json:"user_id,omitempty"`
	ProductID  int       `json:"product_id,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           time.Second,
		MaxAttempts:            2,
	}
	return &Producer{writer: w}, nil
}

func (p *Producer) Publish(ctx context.Context, topic, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

type Noop struct{}

func (Noop) Publish(context.Context, string, string, Event) error { return nil }
func (Noop) Close() error { return nil }

type Published struct {
	Topic string
	Key   string
	Event Event
}

// Memory keeps everything it is given, in order.
type Memory struct {
	mu     sync.Mutex
	events []Published
}

func (m *Memory) Publish(_ context.Context, topic, key string, event Event) error {
	m.mu.Lock()
	m.events = append(m.events, Published{Topic: topic, Key: key, Event: event})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Events() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Published, len(m.events))
	copy(out, m.events)
	return out
}

// Bounded caps how long a single Publish may block its caller.
type Bounded struct {
	Publisher
	Timeout time.Duration
}

func NewBounded(p Publisher, timeout time.Duration) *Bounded {
	return &Bounded{Publisher: p, Timeout: timeout}
}

func (b *Bounded) Publish(ctx context.Context, topic, key string, event Event) error {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()
	return b.Publisher.Publish(ctx, topic, key, event)
}
