package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes the post-creation notification. It satisfies
// appointments.Notifier.
type Producer struct {
	writer *kafkago.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  TopicUserLogin,
			Balancer:               &kafkago.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// AppointmentCreated publishes the bare user id string. Delivery is
// best-effort; callers treat a returned error as log-and-continue.
func (p *Producer) AppointmentCreated(ctx context.Context, userID string) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{Value: []byte(userID)})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
