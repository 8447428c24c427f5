package queries

import (
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ParcelStatsQuery returns the operational dashboard numbers: per-status
// counts, derived totals, revenue for the current calendar month, and the
// average delivery time. Admin only.
type ParcelStatsQuery struct {
	principal account.Principal

	guard guard.ConstructorGuard
}

func NewParcelStatsQuery(principal account.Principal) (ParcelStatsQuery, error) {
	if err := principal.Validate(); err != nil {
		return ParcelStatsQuery{}, err
	}

	return ParcelStatsQuery{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ParcelStatsQuery) Principal() account.Principal {
	return q.principal
}

func (q ParcelStatsQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("ParcelStatsQuery"))
}
