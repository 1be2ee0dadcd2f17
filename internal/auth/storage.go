package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a stored credential record. Username is immutable after creation,
// as is the TOTP secret — there is no rotation flow. The plaintext password
// never appears here; only its bcrypt hash is persisted.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	TOTPSecret   string
	CreatedAt    time.Time
}

// Storage persists user credentials. Implementations must be safe for
// concurrent use; the service holds no state between requests.
type Storage interface {
	// CreateUser inserts a new credential record. It returns ErrUsernameTaken
	// when the username already exists, including when a concurrent
	// registration wins the race at the uniqueness constraint.
	CreateUser(ctx context.Context, user *User) error
	// GetUserByUsername returns ErrUserNotFound when no record exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
