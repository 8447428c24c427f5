package account

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role is the platform role attached to a user account. It scopes which
// lifecycle operations the user may trigger and which parcels they can see.
type Role string

const (
	// RoleAdmin may manage any parcel, drive status transitions, block
	// parcels and users, and read platform statistics.
	RoleAdmin Role = "admin"

	// RoleSender may create parcels and edit or cancel their own parcels
	// before dispatch.
	RoleSender Role = "sender"

	// RoleReceiver may view parcels addressed to their email and confirm
	// delivery.
	RoleReceiver Role = "receiver"
)

// roles returns the set of valid roles.
func roles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:    {},
		RoleSender:   {},
		RoleReceiver: {},
	}
}

// RoleFromString converts an externally supplied string to a Role.
func RoleFromString(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks that the role is one of admin, sender, receiver.
func (r Role) Validate() error {
	if _, ok := roles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the storage and wire representation of the role.
func (r Role) String() string {
	return string(r)
}
