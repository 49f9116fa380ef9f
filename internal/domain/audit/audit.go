package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action represents the admin action that occurred.
type Action string

const (
	ActionStatusUpdate Action = "status_update"
	ActionNoticeCreate Action = "notice_create"
	ActionNoticeDelete Action = "notice_delete"
)

// Event is a single entry in the admin audit trail.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor"`
	Action     Action    `json:"action"`
	ResourceID string    `json:"resource_id"`
	Detail     string    `json:"detail"`
}

// NewEvent creates a new audit event with the given timestamp.
// PRE: actor and action are non-empty
// POST: Returns an Event with a fresh ID
func NewEvent(actor string, action Action, resourceID, detail string, at time.Time) Event {
	return Event{
		ID:         uuid.New().String(),
		Timestamp:  at,
		Actor:      actor,
		Action:     action,
		ResourceID: resourceID,
		Detail:     detail,
	}
}
