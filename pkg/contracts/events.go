package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a catalog change notification published after a mutation.
type Event struct {
	EventID   string    `json:"event_id"`
	Service   string    `json:"service"`
	Type      string    `json:"type"`
	EntityID  string    `json:"entity_id"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Payload   any       `json:"payload,omitempty"`
}

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventUserCreated    = "user.created"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
	EventRuleCreated    = "pricing_rule.created"
	EventRuleUpdated    = "pricing_rule.updated"
	EventRuleDeleted    = "pricing_rule.deleted"
)

func NewEvent(service, typ, entityID string, payload any) Event {
	return Event{
		EventID:   uuid.NewString(),
		Service:   service,
		Type:      typ,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Discard drops every event. Used when no broker is configured.
var Discard Publisher = discard{}
