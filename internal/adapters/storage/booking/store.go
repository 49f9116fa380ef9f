package booking

import (
	"context"
	"errors"

	domain "societydesk/internal/domain/booking"
)

// ErrNotFound is returned when no booking exists for a given ID.
var ErrNotFound = errors.New("booking not found")

// Store holds Booking state for the process lifetime.
type Store interface {
	// Create assigns the next sequential ID and appends the booking.
	Create(ctx context.Context, value domain.Booking) (domain.Booking, error)
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	// ListByResident returns a resident's bookings in insertion order.
	ListByResident(ctx context.Context, residentID string) ([]domain.Booking, error)
	// ListAll returns every booking in insertion order.
	ListAll(ctx context.Context) ([]domain.Booking, error)
	// HasSlot reports whether a booking already occupies the
	// (resident, service, date, time) tuple.
	HasSlot(ctx context.Context, residentID, serviceKey, date, timeSlot string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
