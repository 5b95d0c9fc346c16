package adapter

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines the Kafka producer operations used by the audit streamer, to enable mocking
//
//go:generate mockgen -source=kafka.go -destination=../mocks/kafka.go -package=mocks -mock_names=KafkaWriter=MockKafkaWriter
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter creates a synchronous writer that hashes message keys to partitions,
// so all messages with the same key keep their order
func NewKafkaWriter(brokers []string, topic, clientID string, writeTimeout time.Duration) KafkaWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireAll,
		Transport: &kafka.Transport{
			ClientID: clientID,
		},
	}
}
