package orchestrators

import (
	"crypto/subtle"
	"errors"
	"log/slog"
)

// AdminLoginInput carries input for the admin-login orchestrator.
type AdminLoginInput struct {
	Password string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	// AdminPassword is the single configured admin secret.
	AdminPassword string
}

var (
	ErrInvalidAdminPassword = errors.New("invalid admin password")
	ErrAdminDisabled        = errors.New("admin access is not configured")
)

// ExecuteAdminLogin compares the submitted password to the configured secret.
// The comparison is constant-time; an empty configured secret disables admin
// access entirely rather than matching an empty submission.
// POST: Returns nil only when the password matches
func ExecuteAdminLogin(input AdminLoginInput, deps AdminLoginDeps) error {
	if deps.AdminPassword == "" {
		slog.Warn("auth_event", "event", "admin_login_blocked", "reason", "not_configured")
		return ErrAdminDisabled
	}
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(deps.AdminPassword)) != 1 {
		slog.Info("auth_event", "event", "admin_login_failed")
		return ErrInvalidAdminPassword
	}
	slog.Info("auth_event", "event", "admin_login_success")
	return nil
}
