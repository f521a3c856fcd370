package events

import (
	"time"

	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/session"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationCreated       EventType = "application_created"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationDeleted       EventType = "application_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Kind     session.OwnerKind `json:"kind"`
	ID       string            `json:"id"`
	Username string            `json:"username,omitempty"`
}

// ActorFromOwner converts a session owner into event actor metadata.
func ActorFromOwner(owner session.Owner) Actor {
	return Actor{Kind: owner.Kind, ID: owner.ID, Username: owner.Username}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ApplicationID string    `json:"application_id"`
	Actor         Actor     `json:"actor"`
	Timestamp     time.Time `json:"timestamp"`
	Payload       any       `json:"payload"`
}

// ApplicationCreatedPayload payload.
type ApplicationCreatedPayload struct {
	AccountID string  `json:"account_id"`
	ProductID *string `json:"product_id,omitempty"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}

// ApplicationDeletedPayload payload.
type ApplicationDeletedPayload struct {
	AccountID string                   `json:"account_id"`
	Status    domain.ApplicationStatus `json:"status"`
}
