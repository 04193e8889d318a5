// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered storefront customer account.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Name         string    // The user's display name.
	Email        string    // The user's email, used as the login identifier. Unique.
	PasswordHash string    // The bcrypt-hashed password. Never exposed outward.
	RegisteredAt time.Time // Timestamp of when this account was created.
}
