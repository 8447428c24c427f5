package account

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is the account entity the lifecycle consults for authorization.
// This core reads the role and the block flag; credentials, addresses, and
// the rest of account management belong to the identity collaborator.
type User struct {
	id        kernel.UUID
	name      string
	email     string
	role      Role
	isBlocked bool

	isConstructed bool
}

// NewUser creates an account entity with a unique email and a platform role.
func NewUser(id kernel.UUID, name, email string, role Role) (*User, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return &User{
		id:            id,
		name:          name,
		email:         email,
		role:          role,
		isConstructed: true,
	}, nil
}

// RestoreUser rebuilds an account entity from persistence.
func RestoreUser(id kernel.UUID, name, email string, role Role, isBlocked bool) (*User, error) {
	user, err := NewUser(id, name, email, role)
	if err != nil {
		return nil, err
	}
	user.isBlocked = isBlocked
	return user, nil
}

// Validate ensures the User was created via a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the account id.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the unique account email.
func (u *User) Email() string { return u.email }

// Role returns the platform role.
func (u *User) Role() Role { return u.role }

// IsBlocked reports whether the account is administratively blocked.
// Blocked accounts may not trigger any lifecycle operation.
func (u *User) IsBlocked() bool { return u.isBlocked }

// SetBlocked raises or clears the account block flag.
func (u *User) SetBlocked(blocked bool) {
	u.isBlocked = blocked
}
