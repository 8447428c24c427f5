package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
)

// UserRepository defines the persistence contract for account entities.
// The lifecycle uses it to resolve actors for authorization and to match
// receivers by email; the store enforces email uniqueness.
type UserRepository interface {
	// Add persists a new account. A duplicate email surfaces as a
	// Conflict error.
	Add(ctx context.Context, user *account.User) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, user *account.User) error

	// Get retrieves an account by id. Returns a NotFound error when absent.
	Get(ctx context.Context, id kernel.UUID) (*account.User, error)

	// GetByEmail retrieves an account by its unique email.
	// Returns a NotFound error when no account has the email.
	GetByEmail(ctx context.Context, email string) (*account.User, error)
}
