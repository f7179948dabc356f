package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/medstore/internal/checkout"
)

// Handler relays order messages from the topic to a delivery channel
type Handler struct {
	sender    checkout.Notifier
	recipient string
}

// NewHandler creates a handler. A non-empty recipient overrides the one in
// each message.
func NewHandler(sender checkout.Notifier, recipient string) *Handler {
	return &Handler{
		sender:    sender,
		recipient: recipient,
	}
}

// HandleMessage processes a message from Kafka. Malformed messages are logged
// and dropped; delivery failures are returned so the message is retried.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var sub checkout.Submission
	if err := json.Unmarshal(value, &sub); err != nil {
		log.Printf("[Notifier] Dropping malformed message %s: %v", key, err)
		return nil
	}
	if sub.OrderRef == "" {
		sub.OrderRef = string(key)
	}
	if h.recipient != "" {
		sub.Recipient = h.recipient
	}

	log.Printf("[Notifier] Processing order %s", sub.OrderRef)

	if err := h.sender.Notify(ctx, sub); err != nil {
		log.Printf("[Notifier] Failed to send order %s to %s: %v", sub.OrderRef, sub.Recipient, err)
		return err
	}

	log.Printf("[Notifier] Order notification sent to %s for order %s", sub.Recipient, sub.OrderRef)
	return nil
}
