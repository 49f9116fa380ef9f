package notice

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for admin-editable fields.
const (
	MaxTitleLength = 120
	MaxBodyLength  = 4000
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyBody    = errors.New("body cannot be empty")
	ErrTitleTooLong = errors.New("title cannot exceed 120 characters")
	ErrBodyTooLong  = errors.New("body cannot exceed 4000 characters")
)

// Notice is a society-wide announcement posted by the admin.
// Body is markdown; it is rendered with raw HTML escaped.
type Notice struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(n.Body) == "" {
		return ErrEmptyBody
	}
	if len(n.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}
