// Package kafka publishes standup lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"standup-tracker/internal/domain/entity"
)

// StandupEvent is the JSON payload written to the events topic.
type StandupEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	UserID    string    `json:"userId"`
	StandupID string    `json:"standupId"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// Producer handles publishing events to Kafka.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a new Kafka producer.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	return &Producer{writer: writer, logger: logger}
}

// PublishStandupEvent publishes a standup lifecycle event. Publishing is
// best effort; failures are logged and never surfaced to the caller.
func (p *Producer) PublishStandupEvent(ctx context.Context, eventType string, standup *entity.StandupEntry) {
	event := StandupEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		UserID:    standup.UserID,
		StandupID: standup.ID.String(),
		Date:      standup.Date,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal standup event", "error", err, "eventType", eventType)
		return
	}

	message := kafka.Message{
		Key:   []byte(standup.UserID),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logger.Error("failed to publish standup event", "error", err, "eventType", eventType)
		return
	}

	p.logger.Debug("published standup event", "eventType", eventType, "standupId", event.StandupID)
}

// Close closes the Kafka producer.
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
