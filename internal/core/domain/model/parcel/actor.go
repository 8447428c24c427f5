package parcel

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ActorRefKind discriminates the two ways a history entry can be attributed.
type ActorRefKind string

const (
	// ActorKindUser attributes an action to a registered user by id.
	ActorKindUser ActorRefKind = "user"

	// ActorKindUnregistered attributes an action to a receiver who has no
	// account, identified only by the email the parcel was addressed to.
	ActorKindUnregistered ActorRefKind = "unregistered"
)

// ErrActorRefIsNotConstructed is returned when an ActorRef value bypassed
// its constructors.
var ErrActorRefIsNotConstructed = errs.NewValueIsRequiredError(
	"ActorRef must be created via NewUserActorRef or NewUnregisteredActorRef")

// ActorRef is a tagged reference to whoever performed a lifecycle action.
// Most actions come from registered users; delivery confirmation may come
// from a receiver who never signed up, so the reference is a tagged variant
// rather than a magic placeholder user id.
type ActorRef struct {
	kind   ActorRefKind
	userID kernel.UUID
	email  string

	guard guard.ConstructorGuard
}

// NewUserActorRef creates a reference to a registered user.
func NewUserActorRef(userID kernel.UUID) (ActorRef, error) {
	if err := userID.Validate(); err != nil {
		return ActorRef{}, err
	}
	return ActorRef{
		kind:   ActorKindUser,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewUnregisteredActorRef creates a reference to an unregistered receiver,
// identified by email.
func NewUnregisteredActorRef(email string) (ActorRef, error) {
	if email == "" {
		return ActorRef{}, errs.NewValueIsRequiredError("email")
	}
	return ActorRef{
		kind:  ActorKindUnregistered,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ActorRef was created through a constructor.
func (a ActorRef) Validate() error {
	return a.guard.Validate(ErrActorRefIsNotConstructed)
}

// Kind returns the variant tag.
func (a ActorRef) Kind() ActorRefKind {
	return a.kind
}

// UserID returns the registered user's id and true for the user variant,
// and a zero UUID and false otherwise.
func (a ActorRef) UserID() (kernel.UUID, bool) {
	if a.kind != ActorKindUser {
		return kernel.UUID{}, false
	}
	return a.userID, true
}

// Email returns the unregistered receiver's email, empty for the user variant.
func (a ActorRef) Email() string {
	return a.email
}
