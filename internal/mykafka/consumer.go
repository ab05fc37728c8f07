package mykafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(address []string, topic, groupID string) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  address,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: r}
}

// Next blocks until a message arrives and decodes its JSON payload into out.
func (c *Consumer) Next(ctx context.Context, out interface{}) error {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(m.Value, out)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
