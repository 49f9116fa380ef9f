package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"societydesk/internal/domain/booking"
	"societydesk/internal/domain/service"
)

// BookingStoreForCreate defines the store interface needed by CreateBooking.
type BookingStoreForCreate interface {
	Create(ctx context.Context, b booking.Booking) (booking.Booking, error)
	HasSlot(ctx context.Context, residentID, serviceKey, date, timeSlot string) (bool, error)
}

// CreateBookingInput carries input for the booking-creation orchestrator.
type CreateBookingInput struct {
	ResidentID string
	ServiceKey string
	Date       string
	Time       string
	Notes      string
}

// CreateBookingDeps holds dependencies for CreateBooking.
type CreateBookingDeps struct {
	BookingStore BookingStoreForCreate
	// Now is a variable for testability; defaults to time.Now.
	Now func() time.Time
}

var (
	ErrMissingFields    = errors.New("service, date and time are required")
	ErrInvalidSlot      = errors.New("time is not a bookable slot")
	ErrDuplicateBooking = errors.New("slot already requested for this service")
)

// ExecuteCreateBooking validates and appends a new booking.
// Validations run in a fixed order and each rejection leaves state unchanged:
// known service and presence, calendar date not before today, enumerated
// slot, then duplicate (resident, service, date, time) tuple.
// POST: On success the booking is stored with status Requested
func ExecuteCreateBooking(ctx context.Context, input CreateBookingInput, deps CreateBookingDeps) (booking.Booking, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	svc, known := service.ByKey(input.ServiceKey)
	if !known || input.Date == "" || input.Time == "" {
		return booking.Booking{}, ErrMissingFields
	}

	if err := booking.ValidateDate(input.Date, now()); err != nil {
		return booking.Booking{}, err
	}

	if !service.IsValidSlot(input.Time) {
		return booking.Booking{}, ErrInvalidSlot
	}

	taken, err := deps.BookingStore.HasSlot(ctx, input.ResidentID, input.ServiceKey, input.Date, input.Time)
	if err != nil {
		return booking.Booking{}, err
	}
	if taken {
		return booking.Booking{}, ErrDuplicateBooking
	}

	created, err := deps.BookingStore.Create(ctx, booking.Booking{
		ResidentID:  input.ResidentID,
		ServiceKey:  input.ServiceKey,
		ServiceName: svc.Name,
		Date:        input.Date,
		Time:        input.Time,
		Notes:       strings.TrimSpace(input.Notes),
		CreatedAt:   now().UTC(),
		Status:      booking.StatusRequested,
	})
	if err != nil {
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", created.ID,
		"resident_id", created.ResidentID, "service", created.ServiceKey,
		"date", created.Date, "time", created.Time)
	return created, nil
}
