package queries

import (
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
	"parceltrack/internal/pkg/listing"
)

// parcelListOptions is the allow-list for the parcels list endpoint.
// Query keys are the public API names, values are the backing columns.
func parcelListOptions() listing.Options {
	return listing.Options{
		SearchableFields: []string{"tracking_id", "receiver_name", "description"},
		FilterableFields: map[string]string{
			"status":        "current_status",
			"urgency":       "urgency",
			"type":          "parcel_type",
			"senderId":      "sender_id",
			"receiverEmail": "receiver_email",
			"isBlocked":     "is_blocked",
			"isCancelled":   "is_cancelled",
		},
		SortableFields: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"totalFee":  "total_fee",
			"status":    "current_status",
			"weight":    "weight_kg",
		},
		SelectableFields: map[string]string{
			"id":            "id",
			"trackingId":    "tracking_id",
			"senderId":      "sender_id",
			"receiverName":  "receiver_name",
			"receiverEmail": "receiver_email",
			"status":        "current_status",
			"urgency":       "urgency",
			"totalFee":      "total_fee",
			"createdAt":     "created_at",
		},
		DefaultSort: "-createdAt",
	}
}

// ListParcelsQuery returns a page of parcels. The page is scoped to the
// caller before any client-supplied filter applies: senders see parcels they
// created, receivers see parcels addressed to their email, admins see all.
type ListParcelsQuery struct {
	principal account.Principal
	listing   listing.Query

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(principal account.Principal, raw map[string]string) (ListParcelsQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	q, err := listing.Build(raw, parcelListOptions())
	if err != nil {
		return ListParcelsQuery{}, err
	}

	return ListParcelsQuery{
		principal: principal,
		listing:   q,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListParcelsQuery) Principal() account.Principal {
	return q.principal
}

func (q ListParcelsQuery) Listing() listing.Query {
	return q.listing
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("ListParcelsQuery"))
}
