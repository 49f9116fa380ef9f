package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"societydesk/internal/adapters/email"
)

type mockEmailSender struct {
	requests []email.SendRequest
	err      error
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	return email.SendResult{MessageID: "msg-1"}, nil
}

func fixedTempPassword() (string, error) { return "TEMP42", nil }

func TestExecuteResetPassword_Success(t *testing.T) {
	store := newMockResidentStore(testResident(t, "pass1"))
	deps := ResetPasswordDeps{
		ResidentStore:        store,
		GenerateTempPassword: fixedTempPassword,
	}

	temp, err := ExecuteResetPassword(context.Background(),
		ResetPasswordInput{ResidentID: "R001", Phone: "9876500001"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != "TEMP42" {
		t.Errorf("expected TEMP42, got %q", temp)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one Save call, got %d", len(store.saved))
	}

	// The old password must no longer authenticate; the new one must.
	updated := store.residents["R001"]
	if err := updated.CheckPassword("pass1"); err == nil {
		t.Error("old password still authenticates after reset")
	}
	if err := updated.CheckPassword("TEMP42"); err != nil {
		t.Errorf("temporary password rejected: %v", err)
	}
}

func TestExecuteResetPassword_PhoneMismatch(t *testing.T) {
	store := newMockResidentStore(testResident(t, "pass1"))
	deps := ResetPasswordDeps{ResidentStore: store, GenerateTempPassword: fixedTempPassword}

	tests := []struct {
		name  string
		input ResetPasswordInput
	}{
		{"wrong phone", ResetPasswordInput{ResidentID: "R001", Phone: "0000000000"}},
		{"unknown resident", ResetPasswordInput{ResidentID: "R999", Phone: "9876500001"}},
		{"empty id", ResetPasswordInput{Phone: "9876500001"}},
		{"empty phone", ResetPasswordInput{ResidentID: "R001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteResetPassword(context.Background(), tt.input, deps)
			if !errors.Is(err, ErrPhoneMismatch) {
				t.Errorf("expected ErrPhoneMismatch, got %v", err)
			}
		})
	}
	if len(store.saved) != 0 {
		t.Errorf("rejected resets must not persist, got %d Save calls", len(store.saved))
	}
}

func TestExecuteResetPassword_SaveFailure(t *testing.T) {
	store := newMockResidentStore(testResident(t, "pass1"))
	store.saveErr = errors.New("disk full")
	deps := ResetPasswordDeps{ResidentStore: store, GenerateTempPassword: fixedTempPassword}

	_, err := ExecuteResetPassword(context.Background(),
		ResetPasswordInput{ResidentID: "R001", Phone: "9876500001"}, deps)
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
}

func TestExecuteResetPassword_EmailsResidentWhenAddressKnown(t *testing.T) {
	res := testResident(t, "pass1")
	res.Email = "asha@example.org"
	store := newMockResidentStore(res)
	sender := &mockEmailSender{}
	deps := ResetPasswordDeps{
		ResidentStore:        store,
		EmailSender:          sender,
		EmailFrom:            "Society Desk <noreply@example.org>",
		GenerateTempPassword: fixedTempPassword,
	}

	_, err := ExecuteResetPassword(context.Background(),
		ResetPasswordInput{ResidentID: "R001", Phone: "9876500001"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.requests) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.requests))
	}
	req := sender.requests[0]
	if req.To[0] != "asha@example.org" {
		t.Errorf("unexpected recipient: %v", req.To)
	}
	if !strings.Contains(req.HTML, "TEMP42") {
		t.Error("email body must contain the temporary password")
	}
}

func TestExecuteResetPassword_NoEmailWithoutAddress(t *testing.T) {
	store := newMockResidentStore(testResident(t, "pass1"))
	sender := &mockEmailSender{}
	deps := ResetPasswordDeps{
		ResidentStore:        store,
		EmailSender:          sender,
		GenerateTempPassword: fixedTempPassword,
	}

	_, err := ExecuteResetPassword(context.Background(),
		ResetPasswordInput{ResidentID: "R001", Phone: "9876500001"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.requests) != 0 {
		t.Errorf("expected no email for resident without address, got %d", len(sender.requests))
	}
}

func TestExecuteResetPassword_EmailFailureIsNotFatal(t *testing.T) {
	res := testResident(t, "pass1")
	res.Email = "asha@example.org"
	store := newMockResidentStore(res)
	sender := &mockEmailSender{err: errors.New("provider down")}
	deps := ResetPasswordDeps{
		ResidentStore:        store,
		EmailSender:          sender,
		GenerateTempPassword: fixedTempPassword,
	}

	temp, err := ExecuteResetPassword(context.Background(),
		ResetPasswordInput{ResidentID: "R001", Phone: "9876500001"}, deps)
	if err != nil {
		t.Fatalf("reset must succeed even when email delivery fails: %v", err)
	}
	if temp != "TEMP42" {
		t.Errorf("expected TEMP42, got %q", temp)
	}
}
