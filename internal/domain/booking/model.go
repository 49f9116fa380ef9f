package booking

import (
	"errors"
	"fmt"
	"time"
)

// Booking status constants
const (
	StatusRequested  = "Requested"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// ValidStatuses contains all valid status values, in workflow order.
var ValidStatuses = []string{StatusRequested, StatusInProgress, StatusCompleted, StatusCancelled}

// DateLayout is the calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyStatus   = errors.New("status cannot be empty")
	ErrUnknownStatus = errors.New("status must be one of: Requested, In Progress, Completed, Cancelled")
	ErrInvalidDate   = errors.New("date is not a valid calendar date")
	ErrPastDate      = errors.New("date cannot be in the past")
)

// Booking holds state for a single service request.
type Booking struct {
	ID          string    `json:"id"`
	ResidentID  string    `json:"resident_id"`
	ServiceKey  string    `json:"service_key"`
	ServiceName string    `json:"service_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

// FormatID renders the fixed-width booking ID for a sequence number.
// Zero-padding keeps lexicographic and numeric order aligned.
func FormatID(seq int) string {
	return fmt.Sprintf("B%04d", seq)
}

// IsValidStatus reports whether s is one of the enumerated statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ParseDate parses a calendar date in DateLayout.
// POST: Returns ErrInvalidDate if the string is not a valid date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidateDate checks that s parses and is not strictly before today.
// The comparison uses the calendar date of `now` (server-local "today").
// PRE: now is the current time
// POST: Returns ErrInvalidDate or ErrPastDate on failure, nil otherwise
func ValidateDate(s string, now time.Time) error {
	d, err := ParseDate(s)
	if err != nil {
		return err
	}
	today, _ := time.Parse(DateLayout, now.Format(DateLayout))
	if d.Before(today) {
		return ErrPastDate
	}
	return nil
}

// SetStatus transitions the booking to a new status.
// PRE: Booking exists
// POST: Status is updated, or an error is returned and nothing changes
func (b *Booking) SetStatus(status string) error {
	if status == "" {
		return ErrEmptyStatus
	}
	if !IsValidStatus(status) {
		return ErrUnknownStatus
	}
	b.Status = status
	return nil
}

// MatchesSlot reports whether the booking occupies the same
// (resident, service, date, time) tuple.
// INVARIANT: Booking fields are not mutated
func (b *Booking) MatchesSlot(residentID, serviceKey, date, timeSlot string) bool {
	return b.ResidentID == residentID &&
		b.ServiceKey == serviceKey &&
		b.Date == date &&
		b.Time == timeSlot
}
