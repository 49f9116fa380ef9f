package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"societydesk/internal/domain/resident"
)

// ResidentStoreForLogin defines the store interface needed by Login.
type ResidentStoreForLogin interface {
	GetByID(ctx context.Context, id string) (resident.Resident, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	ResidentID string
	Password   string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	ResidentID string
	Name       string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	ResidentStore ResidentStoreForLogin
}

var (
	ErrUnknownResident = errors.New("unknown resident id")
	ErrWrongPassword   = errors.New("incorrect password")
)

// ExecuteLogin validates credentials and returns resident info for session creation.
// PRE: Valid resident ID and password provided
// POST: Returns resident info on success; state is never mutated
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.ResidentID == "" {
		return LoginResult{}, ErrUnknownResident
	}

	res, err := deps.ResidentStore.GetByID(ctx, input.ResidentID)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "resident_id", input.ResidentID, "reason", "not_found")
		return LoginResult{}, ErrUnknownResident
	}

	if err := res.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "resident_id", input.ResidentID, "reason", "wrong_password")
		return LoginResult{}, ErrWrongPassword
	}

	slog.Info("auth_event", "event", "login_success", "resident_id", input.ResidentID)

	return LoginResult{
		ResidentID: res.ResidentID,
		Name:       res.Name,
	}, nil
}
