package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nazeru/contractforge-go/pkg/contracts"
)

type Client struct {
	Brokers []string
}

func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		// Publishing happens inline with the HTTP request.
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
	}
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func PublishJSON(ctx context.Context, writer MessageWriter, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data, Time: time.Now().UTC()})
}

var ErrDisabled = errors.New("kafka disabled")

// Publisher sends catalog events keyed by entity id so changes to one record
// stay ordered within a partition.
type Publisher struct {
	writer MessageWriter
}

var _ contracts.Publisher = (*Publisher)(nil)

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewPublisherFromEnv returns a kafka-backed publisher, or contracts.Discard
// when brokersCSV is empty.
func NewPublisherFromEnv(brokersCSV, topic string) (contracts.Publisher, func() error) {
	c := NewClient(brokersCSV)
	if !c.Enabled() {
		return contracts.Discard, func() error { return nil }
	}
	w := c.NewWriter(topic)
	return NewPublisher(w), w.Close
}

func (p *Publisher) Publish(ctx context.Context, evt contracts.Event) error {
	if p.writer == nil {
		return ErrDisabled
	}
	return PublishJSON(ctx, p.writer, evt.EntityID, evt)
}
