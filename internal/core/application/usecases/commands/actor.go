package commands

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// resolveActor loads the authenticated principal's account and rejects
// callers that no longer exist or are administratively blocked. Every
// mutation re-checks this against the store rather than trusting the token
// alone.
func resolveActor(
	ctx context.Context, users ports.UserRepository, principal account.Principal,
) (*account.User, error) {
	if err := principal.Validate(); err != nil {
		return nil, err
	}

	actor, err := users.Get(ctx, principal.UserID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewUnauthorizedErrorWithCause("actor does not exist", err)
		}
		return nil, err
	}

	if actor.IsBlocked() {
		return nil, errs.NewForbiddenError("account is blocked")
	}
	return actor, nil
}

// requireRole rejects actors whose role does not match the operation contract.
func requireRole(actor *account.User, role account.Role) error {
	if actor.Role() != role {
		return errs.NewForbiddenError(
			fmt.Sprintf("operation requires role %s, actor has role %s", role, actor.Role()))
	}
	return nil
}
