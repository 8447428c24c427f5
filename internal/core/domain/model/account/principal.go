package account

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrPrincipalIsNotConstructed is returned when a Principal bypassed NewPrincipal.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal")

// Principal is the authenticated identity triple supplied by the identity
// provider for every protected call: user id, email, and role. Operations
// reject calls without a valid principal before touching any state.
type Principal struct {
	userID kernel.UUID
	email  string
	role   Role

	guard guard.ConstructorGuard
}

// NewPrincipal wraps the identity-provider triple in a value object.
func NewPrincipal(userID kernel.UUID, email string, role Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, errs.NewUnauthorizedErrorWithCause("principal has no valid user id", err)
	}
	if email == "" {
		return Principal{}, errs.NewUnauthorizedError("principal has no email")
	}
	if err := role.Validate(); err != nil {
		return Principal{}, errs.NewUnauthorizedErrorWithCause("principal has no valid role", err)
	}
	return Principal{
		userID: userID,
		email:  email,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Principal was created through NewPrincipal.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

// UserID returns the authenticated user's id.
func (p Principal) UserID() kernel.UUID { return p.userID }

// Email returns the authenticated user's email.
func (p Principal) Email() string { return p.email }

// Role returns the authenticated user's role.
func (p Principal) Role() Role { return p.role }

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.role == RoleAdmin }
