package resident

import (
	"context"
	"errors"

	domain "societydesk/internal/domain/resident"
)

// ErrNotFound is returned when no resident exists for a given ID.
var ErrNotFound = errors.New("resident not found")

// Store persists Resident state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Resident, error)
	List(ctx context.Context) ([]domain.Resident, error)
	Save(ctx context.Context, value domain.Resident) error
}
