package notice

import (
	"context"

	domain "societydesk/internal/domain/notice"
)

// Store persists Notice state.
type Store interface {
	Save(ctx context.Context, value domain.Notice) error
	GetByID(ctx context.Context, id string) (domain.Notice, error)
	// List returns notices newest first.
	List(ctx context.Context) ([]domain.Notice, error)
	Delete(ctx context.Context, id string) error
}
