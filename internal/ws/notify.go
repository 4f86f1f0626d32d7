package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"portfolio-api/internal/domain/portfolio"
)

const EventContactMessageCreated = "contact_message_created"

type ContactEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// Publisher carries encoded events to every instance's hub.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// LocalPublisher broadcasts straight to this process's hub.
type LocalPublisher struct {
	Hub *Hub
}

func (p LocalPublisher) Publish(_ context.Context, payload []byte) error {
	p.Hub.Broadcast(payload)
	return nil
}

// ContactNotifier turns stored contact messages into feed events.
type ContactNotifier struct {
	publisher Publisher
	logger    *log.Logger
}

func NewContactNotifier(publisher Publisher, logger *log.Logger) *ContactNotifier {
	return &ContactNotifier{publisher: publisher, logger: logger}
}

func (n *ContactNotifier) NotifyContactMessage(ctx context.Context, msg portfolio.ContactMessage) {
	if n == nil || n.publisher == nil {
		return
	}

	evt := ContactEvent{
		Type:      EventContactMessageCreated,
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Timestamp: msg.CreatedAt.UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	if err := n.publisher.Publish(ctx, b); err != nil && n.logger != nil {
		n.logger.Printf("WS notify error | id=%s error=%v", msg.ID, err)
	}
}
