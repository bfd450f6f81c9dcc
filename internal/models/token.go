package models

import "time"

// RevokedToken identifies a JWT that must be rejected until it expires.
type RevokedToken struct {
	// JTI is the token's unique identifier claim.
	JTI string

	// ExpiresAt is when the token would have expired on its own.
	// After this instant the entry can be discarded.
	ExpiresAt time.Time
}
