package queries

import (
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
	"parceltrack/internal/pkg/listing"
)

// userListOptions is the allow-list for the users list endpoint.
func userListOptions() listing.Options {
	return listing.Options{
		SearchableFields: []string{"name", "email"},
		FilterableFields: map[string]string{
			"role":      "role",
			"isBlocked": "is_blocked",
		},
		SortableFields: map[string]string{
			"name":      "name",
			"email":     "email",
			"createdAt": "created_at",
		},
		SelectableFields: map[string]string{
			"id":        "id",
			"name":      "name",
			"email":     "email",
			"role":      "role",
			"isBlocked": "is_blocked",
		},
		DefaultSort: "name",
	}
}

// ListUsersQuery returns a page of user accounts. Admin only.
type ListUsersQuery struct {
	principal account.Principal
	listing   listing.Query

	guard guard.ConstructorGuard
}

func NewListUsersQuery(principal account.Principal, raw map[string]string) (ListUsersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListUsersQuery{}, err
	}
	q, err := listing.Build(raw, userListOptions())
	if err != nil {
		return ListUsersQuery{}, err
	}

	return ListUsersQuery{
		principal: principal,
		listing:   q,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListUsersQuery) Principal() account.Principal {
	return q.principal
}

func (q ListUsersQuery) Listing() listing.Query {
	return q.listing
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("ListUsersQuery"))
}
