package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is assigned to users who have not picked one.
const DefaultCurrency = "USD"

// User is an account that owns bills and a people list.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's login (unique).
	Email string

	// DisplayName is shown in place of the email.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// DefaultCurrency seeds the source currency of new bills.
	DefaultCurrency string

	// Locale is a BCP 47 tag used when formatting amounts (e.g., "en-GB").
	Locale string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and default preferences.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:              uuid.New().String(),
		Email:           email,
		DisplayName:     displayName,
		PasswordHash:    passwordHash,
		DefaultCurrency: DefaultCurrency,
		Locale:          "en-GB",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
