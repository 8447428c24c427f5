package queries

import (
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// GetParcelQuery retrieves a single parcel with its full status history.
// Visibility is scoped by role: admins see any parcel, senders see their own,
// receivers see parcels addressed to their email.
type GetParcelQuery struct {
	principal account.Principal
	parcelID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(principal account.Principal, parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	if err := principal.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		principal: principal,
		parcelID:  parcelID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelQuery) Principal() account.Principal {
	return q.principal
}

func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("GetParcelQuery"))
}
