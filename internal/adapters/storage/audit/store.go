package audit

import (
	"context"

	domain "societydesk/internal/domain/audit"
)

// Store persists admin audit events.
type Store interface {
	// Save persists an audit event.
	// PRE: event is valid
	// POST: Event is persisted
	Save(ctx context.Context, event domain.Event) error

	// List returns audit events ordered by timestamp desc.
	// PRE: limit > 0
	List(ctx context.Context, limit int) ([]domain.Event, error)
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
