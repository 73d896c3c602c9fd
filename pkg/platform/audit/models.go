package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategorySecurity covers authentication failures and access decisions.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine portal activity such as fetches.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string        `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	Subject   string        `json:"subject"`
	RequestID string        `json:"request_id,omitempty"`
	Detail    string        `json:"detail,omitempty"`
}

type AuditEvent string

const (
	// License sync events
	EventLicensesRequested     AuditEvent = "licenses_requested"
	EventLicensesReceived      AuditEvent = "licenses_received"
	EventLicensesRequestFailed AuditEvent = "licenses_request_failed"

	// Partner events
	EventPartnerKeySelected AuditEvent = "partner_key_selected"

	// Notice events
	EventNoticeDismissed AuditEvent = "notice_dismissed"

	// Plans events
	EventPlansCatalogLoaded AuditEvent = "plans_catalog_loaded"

	// Auth events
	EventAuthFailed AuditEvent = "auth_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAuthFailed:         CategorySecurity,
	EventPartnerKeySelected: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can read events back.
type Lister interface {
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
