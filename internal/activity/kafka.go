package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes activity events to a topic, keyed by resource id so one
// resource's history stays in order. Write errors are logged and swallowed;
// the audit channel never fails the main flow.
type KafkaSink struct {
	w *kafka.Writer
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (s *KafkaSink) Write(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("WARN: activity marshal failed: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.ResourceID),
		Value: payload,
		Time:  ev.OccurredAt,
	}
	if err := s.w.WriteMessages(context.Background(), msg); err != nil {
		log.Printf("WARN: activity publish failed type=%s reservation=%s: %v", ev.Type, ev.ReservationID, err)
	}
}

func (s *KafkaSink) Close() {
	_ = s.w.Close()
}
