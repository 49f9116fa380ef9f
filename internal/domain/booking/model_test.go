package booking

import (
	"testing"
	"time"
)

func TestFormatID(t *testing.T) {
	tests := []struct {
		seq  int
		want string
	}{
		{1, "B0001"},
		{42, "B0042"},
		{9999, "B9999"},
	}
	for _, tt := range tests {
		if got := FormatID(tt.seq); got != tt.want {
			t.Errorf("FormatID(%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		if !IsValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "requested", "Done", "IN PROGRESS"} {
		if IsValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"today", "2026-03-15", nil},
		{"future", "2099-01-01", nil},
		{"yesterday", "2026-03-14", ErrPastDate},
		{"far past", "2020-01-01", ErrPastDate},
		{"garbage", "not-a-date", ErrInvalidDate},
		{"empty", "", ErrInvalidDate},
		{"wrong layout", "15/03/2026", ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDate(tt.date, now); err != tt.wantErr {
				t.Errorf("ValidateDate(%q) = %v, want %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestSetStatus(t *testing.T) {
	b := Booking{ID: "B0001", Status: StatusRequested}

	if err := b.SetStatus(""); err != ErrEmptyStatus {
		t.Errorf("expected ErrEmptyStatus, got %v", err)
	}
	if b.Status != StatusRequested {
		t.Errorf("rejected update must not mutate status, got %q", b.Status)
	}

	if err := b.SetStatus("Done"); err != ErrUnknownStatus {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}

	if err := b.SetStatus(StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, b.Status)
	}
}

func TestMatchesSlot(t *testing.T) {
	b := Booking{ResidentID: "R001", ServiceKey: "plumber", Date: "2099-01-01", Time: "09:00"}

	if !b.MatchesSlot("R001", "plumber", "2099-01-01", "09:00") {
		t.Error("expected identical tuple to match")
	}
	if b.MatchesSlot("R002", "plumber", "2099-01-01", "09:00") {
		t.Error("different resident must not match")
	}
	if b.MatchesSlot("R001", "electrician", "2099-01-01", "09:00") {
		t.Error("different service must not match")
	}
	if b.MatchesSlot("R001", "plumber", "2099-01-02", "09:00") {
		t.Error("different date must not match")
	}
	if b.MatchesSlot("R001", "plumber", "2099-01-01", "10:00") {
		t.Error("different time must not match")
	}
}
