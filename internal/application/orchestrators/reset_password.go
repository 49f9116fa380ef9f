package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"societydesk/internal/adapters/email"
	"societydesk/internal/domain/resident"
)

// ResidentStoreForReset defines the store interface needed by ResetPassword.
type ResidentStoreForReset interface {
	GetByID(ctx context.Context, id string) (resident.Resident, error)
	Save(ctx context.Context, r resident.Resident) error
}

// ResetPasswordInput carries input for the password-reset orchestrator.
type ResetPasswordInput struct {
	ResidentID string
	Phone      string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	ResidentStore ResidentStoreForReset
	// EmailSender is optional; when set and the resident has an email
	// address, the temporary password is also delivered out-of-band.
	EmailSender email.Sender
	EmailFrom   string
	// GenerateTempPassword is a variable for testability.
	GenerateTempPassword func() (string, error)
}

// ErrPhoneMismatch covers both an unknown resident and a wrong phone, so the
// response does not reveal which IDs exist.
var ErrPhoneMismatch = errors.New("resident id and phone do not match")

// ExecuteResetPassword validates the resident/phone pair, overwrites the
// password with a temporary one, and persists the full resident collection.
// POST: On success the old password no longer authenticates; returns the
// plaintext temporary password for display to the caller
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) (string, error) {
	if input.ResidentID == "" || input.Phone == "" {
		return "", ErrPhoneMismatch
	}

	res, err := deps.ResidentStore.GetByID(ctx, input.ResidentID)
	if err != nil {
		slog.Info("auth_event", "event", "reset_failed", "resident_id", input.ResidentID, "reason", "not_found")
		return "", ErrPhoneMismatch
	}
	if res.Phone != input.Phone {
		slog.Info("auth_event", "event", "reset_failed", "resident_id", input.ResidentID, "reason", "phone_mismatch")
		return "", ErrPhoneMismatch
	}

	generate := deps.GenerateTempPassword
	if generate == nil {
		generate = resident.GenerateTempPassword
	}
	temp, err := generate()
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	if err := res.SetPassword(temp); err != nil {
		return "", err
	}
	if err := deps.ResidentStore.Save(ctx, res); err != nil {
		return "", fmt.Errorf("persist resident after reset: %w", err)
	}

	slog.Info("auth_event", "event", "reset_success", "resident_id", input.ResidentID)

	// Best-effort out-of-band delivery; the flash message remains the
	// primary channel for this demo-grade flow.
	if deps.EmailSender != nil && res.Email != "" {
		_, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{res.Email},
			From:    deps.EmailFrom,
			Subject: "Your temporary Society Desk password",
			HTML: fmt.Sprintf("<p>Hello %s,</p><p>Your temporary password is <strong>%s</strong>. Please log in and change it.</p>",
				res.Name, temp),
		})
		if err != nil {
			slog.Warn("reset_email_failed", "resident_id", input.ResidentID, "error", err)
		}
	}

	return temp, nil
}
