package projections

import (
	"context"
	"sort"

	"societydesk/internal/domain/booking"
	"societydesk/internal/domain/resident"
)

// AdminBookingStore defines the booking store interface needed by the review projection.
type AdminBookingStore interface {
	ListAll(ctx context.Context) ([]booking.Booking, error)
}

// AdminResidentStore defines the resident store interface needed by the review projection.
type AdminResidentStore interface {
	GetByID(ctx context.Context, id string) (resident.Resident, error)
}

// GetAdminBookingsDeps holds dependencies for the review projection.
type GetAdminBookingsDeps struct {
	BookingStore  AdminBookingStore
	ResidentStore AdminResidentStore
}

// ReviewRow is one booking on the admin review list, with the owning
// resident resolved.
type ReviewRow struct {
	ID           string
	ResidentName string
	ResidentID   string
	Building     string
	Flat         string
	Service      string
	Date         string
	Time         string
	Status       string
	Notes        string
}

// QueryGetAdminBookings builds the admin review rows, newest booking first.
// A missing resident record falls back to placeholder values instead of
// failing the whole list.
// POST: Rows are sorted by booking ID descending; zero-padded IDs keep the
// string sort aligned with numeric order
func QueryGetAdminBookings(ctx context.Context, deps GetAdminBookingsDeps) ([]ReviewRow, error) {
	bookings, err := deps.BookingStore.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ReviewRow, 0, len(bookings))
	for _, b := range bookings {
		row := ReviewRow{
			ID:           b.ID,
			ResidentID:   b.ResidentID,
			ResidentName: "Unknown",
			Service:      b.ServiceName,
			Date:         b.Date,
			Time:         b.Time,
			Status:       b.Status,
			Notes:        b.Notes,
		}
		if res, err := deps.ResidentStore.GetByID(ctx, b.ResidentID); err == nil {
			row.ResidentName = res.Name
			row.Building = res.Building
			row.Flat = res.FlatLabel()
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}
