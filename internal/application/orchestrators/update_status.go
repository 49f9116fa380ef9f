package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditDomain "societydesk/internal/domain/audit"
	"societydesk/internal/domain/booking"
)

// BookingStoreForStatus defines the store interface needed by UpdateStatus.
type BookingStoreForStatus interface {
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// AuditStoreForStatus defines the audit store interface needed by UpdateStatus.
type AuditStoreForStatus interface {
	Save(ctx context.Context, event auditDomain.Event) error
}

// UpdateStatusInput carries input for the status-update orchestrator.
type UpdateStatusInput struct {
	BookingID string
	Status    string
}

// UpdateStatusDeps holds dependencies for UpdateStatus.
type UpdateStatusDeps struct {
	BookingStore BookingStoreForStatus
	// AuditStore is optional; when set, the transition is recorded.
	AuditStore AuditStoreForStatus
	// Now is a variable for testability; defaults to time.Now.
	Now func() time.Time
}

// ExecuteUpdateStatus overwrites a booking's status after validating it.
// An empty status is an explicit rejection, not a silent no-op.
// POST: Booking status equals the submitted value, and the transition is audited
func ExecuteUpdateStatus(ctx context.Context, input UpdateStatusInput, deps UpdateStatusDeps) error {
	if input.Status == "" {
		return booking.ErrEmptyStatus
	}
	if !booking.IsValidStatus(input.Status) {
		return booking.ErrUnknownStatus
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	prev, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return err
	}

	if err := deps.BookingStore.UpdateStatus(ctx, input.BookingID, input.Status); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "status_updated", "booking_id", input.BookingID,
		"from", prev.Status, "to", input.Status)

	if deps.AuditStore != nil {
		event := auditDomain.NewEvent("admin", auditDomain.ActionStatusUpdate, input.BookingID,
			fmt.Sprintf("%s → %s", prev.Status, input.Status), now())
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			// The status change already happened; an audit write failure
			// must not roll it back or fail the request.
			slog.Warn("audit_write_failed", "booking_id", input.BookingID, "error", err)
		}
	}
	return nil
}
