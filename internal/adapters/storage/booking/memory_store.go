package booking

import (
	"context"
	"fmt"
	"sync"

	domain "societydesk/internal/domain/booking"
)

// MemoryStore implements Store as an in-process ordered sequence.
// Bookings are never persisted; the collection is cleared on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings []domain.Booking
}

// NewMemoryStore creates an empty booking store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Create assigns the next sequential ID and appends the booking.
// IDs are B + zero-padded count+1; the counter is monotonic because
// bookings are never removed.
// POST: Returned booking carries the assigned ID
func (s *MemoryStore) Create(_ context.Context, value domain.Booking) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value.ID = domain.FormatID(len(s.bookings) + 1)
	s.bookings = append(s.bookings, value)
	return value, nil
}

// GetByID retrieves a Booking by its ID.
// POST: Returns the booking or ErrNotFound
func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListByResident returns a resident's bookings, oldest first.
// INVARIANT: Insertion order is preserved
func (s *MemoryStore) ListByResident(_ context.Context, residentID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.ResidentID == residentID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ListAll returns every booking in insertion order.
func (s *MemoryStore) ListAll(_ context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// HasSlot reports whether a booking already occupies the tuple.
func (s *MemoryStore) HasSlot(_ context.Context, residentID, serviceKey, date, timeSlot string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bookings {
		if s.bookings[i].MatchesSlot(residentID, serviceKey, date, timeSlot) {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus overwrites the status of the first booking with a matching ID.
// PRE: status has been validated by the caller
// POST: Booking status equals the submitted value, or ErrNotFound
func (s *MemoryStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
