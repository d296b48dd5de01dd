package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"product-service/internal/entity"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes product events to Kafka.
type Producer struct {
	writer MessageWriter
}

func NewProducer(writer MessageWriter) *Producer {
	return &Producer{writer: writer}
}

// NewKafkaWriter creates a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// PublishProductEvent writes event keyed as product-<event>-<id>.
func (p *Producer) PublishProductEvent(ctx context.Context, event *entity.ProductEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// product-created-<id>, product-updated-<id> or product-deleted-<id>
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("product-%s-%s", event.Event, event.ProductID)),
		Value: value,
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
