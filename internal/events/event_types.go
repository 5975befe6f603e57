package events

import (
	"time"

	"github.com/micorpx/acquisitions/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserSignedIn   EventType = "user_signed_in"
	EventUserSignedOut  EventType = "user_signed_out"
	EventUserDeleted    EventType = "user_deleted"
	EventSecurityDenied EventType = "security_denied"
)

// Event represents a domain event emitted by services and middleware.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// UserEventPayload payload for account lifecycle events.
type UserEventPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// SecurityDeniedPayload payload for abuse-shield denials.
type SecurityDeniedPayload struct {
	Reason string `json:"reason"`
	Tier   string `json:"tier"`
	IP     string `json:"ip"`
	Path   string `json:"path"`
	Method string `json:"method"`
}
