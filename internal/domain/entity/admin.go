package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a back-office operator account. Admins authenticate by
// username and pass the stricter authorization gate on management endpoints.
type Admin struct {
	ID           uuid.UUID  // The unique identifier for the admin.
	Username     string     // The admin's login identifier. Unique.
	PasswordHash string     // The bcrypt-hashed password. Never exposed outward.
	RegisteredAt time.Time  // Timestamp of when this account was created.
	LastLoginAt  *time.Time // Stamped on every successful login. Nil before the first one.
}
