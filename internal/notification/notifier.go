package notification

import (
	"context"
	"log"
	"time"

	"github.com/example/medstore/internal/checkout"
)

// MessageTypeOrderSubmitted tags order notifications on the topic
const MessageTypeOrderSubmitted = "OrderSubmitted"

// LogNotifier stands in for a real collaborator: it logs the message and
// succeeds after an optional delay
type LogNotifier struct {
	Delay time.Duration
}

func NewLogNotifier(delay time.Duration) *LogNotifier {
	return &LogNotifier{Delay: delay}
}

func (n *LogNotifier) Notify(ctx context.Context, sub checkout.Submission) error {
	if n.Delay > 0 {
		select {
		case <-time.After(n.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Printf("[Notifier] Order %s for %s (%s): total %s, shipping %s\n%s",
		sub.OrderRef, sub.CustomerName, sub.CustomerPhone, sub.TotalFormatted, sub.ShippingLabel, sub.RenderedItems)
	return nil
}

// Publisher is the subset of the Kafka producer the notifier needs
type Publisher interface {
	Publish(ctx context.Context, key, messageType string, payload any) error
}

// KafkaNotifier hands submissions to the notifier service through a topic
type KafkaNotifier struct {
	publisher Publisher
}

func NewKafkaNotifier(publisher Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher}
}

func (n *KafkaNotifier) Notify(ctx context.Context, sub checkout.Submission) error {
	if err := n.publisher.Publish(ctx, sub.OrderRef, MessageTypeOrderSubmitted, sub); err != nil {
		log.Printf("[Notifier] Failed to publish order %s: %v", sub.OrderRef, err)
		return err
	}
	log.Printf("[Notifier] Published order %s", sub.OrderRef)
	return nil
}
