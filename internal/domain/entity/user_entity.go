package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never serialized.
type User struct {
	ID        int64
	UUID      uuid.UUID
	Username  string
	Email     string
	Password  string `json:"-"`
	Role      Role
	Photo     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims and lowercases an address the same way for writes and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
