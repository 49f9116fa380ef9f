package resident

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// tempPasswordAlphabet excludes visually ambiguous characters (0/O, 1/I).
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TempPasswordLength is the length of generated temporary passwords.
const TempPasswordLength = 6

// Domain errors
var (
	ErrEmptyResidentID = errors.New("resident id cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrWrongPassword   = errors.New("incorrect password")
)

// Resident holds state for a society resident account.
// PasswordHash is serialized under the legacy "password" key so existing
// resident files keep their shape.
type Resident struct {
	ResidentID   string `json:"resident_id"`
	Name         string `json:"name"`
	PasswordHash string `json:"password"`
	Phone        string `json:"phone"`
	Building     string `json:"building"`
	Floor        string `json:"floor"`
	Flat         string `json:"flat"`
	Email        string `json:"email,omitempty"`
}

// Validate checks if the Resident has valid data.
// PRE: Resident struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Resident) Validate() error {
	if strings.TrimSpace(r.ResidentID) == "" {
		return ErrEmptyResidentID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (r *Resident) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	r.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Resident fields are not mutated
func (r *Resident) CheckPassword(plaintext string) error {
	if r.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// FlatLabel formats the combined floor/flat label shown on the admin review.
// INVARIANT: Resident fields are not mutated
func (r *Resident) FlatLabel() string {
	return fmt.Sprintf("F%s • %s", r.Floor, r.Flat)
}

// GenerateTempPassword returns a random temporary password drawn uniformly
// from the restricted alphabet.
// POST: Returned string has TempPasswordLength characters
func GenerateTempPassword() (string, error) {
	buf := make([]byte, TempPasswordLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, TempPasswordLength)
	for i, b := range buf {
		out[i] = tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)]
	}
	return string(out), nil
}
