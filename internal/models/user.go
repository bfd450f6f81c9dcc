package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID int64

	// Username is the normalised login name (unique).
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a new user with the creation timestamp set.
// The ID is assigned when the user is persisted.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
