package projections

import (
	"context"
	"time"

	"societydesk/internal/domain/booking"
	"societydesk/internal/domain/notice"
	"societydesk/internal/domain/resident"
	"societydesk/internal/domain/service"
)

// DashboardResidentStore defines the resident store interface needed by the dashboard projection.
type DashboardResidentStore interface {
	GetByID(ctx context.Context, id string) (resident.Resident, error)
}

// DashboardBookingStore defines the booking store interface needed by the dashboard projection.
type DashboardBookingStore interface {
	ListByResident(ctx context.Context, residentID string) ([]booking.Booking, error)
}

// DashboardNoticeStore defines the notice store interface needed by the dashboard projection.
type DashboardNoticeStore interface {
	List(ctx context.Context) ([]notice.Notice, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ResidentStore DashboardResidentStore
	BookingStore  DashboardBookingStore
	// NoticeStore is optional: nil skips the announcements section.
	NoticeStore DashboardNoticeStore
}

// DashboardResult carries everything the dashboard page needs.
type DashboardResult struct {
	Resident  resident.Resident
	Services  []service.Service
	TimeSlots []string
	// Bookings holds the resident's own bookings, oldest first.
	Bookings []booking.Booking
	Notices  []notice.Notice
	// Today is the current calendar date, used as the date input minimum.
	Today string
}

// QueryGetDashboard assembles the resident dashboard.
// PRE: residentID comes from an authenticated session
// POST: Bookings contain only the resident's own entries, insertion order preserved
func QueryGetDashboard(ctx context.Context, residentID string, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	res, err := deps.ResidentStore.GetByID(ctx, residentID)
	if err != nil {
		return DashboardResult{}, err
	}

	bookings, err := deps.BookingStore.ListByResident(ctx, residentID)
	if err != nil {
		return DashboardResult{}, err
	}

	result := DashboardResult{
		Resident:  res,
		Services:  service.Catalog,
		TimeSlots: service.TimeSlots,
		Bookings:  bookings,
		Today:     now.Format(booking.DateLayout),
	}

	if deps.NoticeStore != nil {
		notices, err := deps.NoticeStore.List(ctx)
		if err == nil {
			result.Notices = notices
		}
	}
	return result, nil
}
