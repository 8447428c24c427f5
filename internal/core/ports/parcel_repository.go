package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Implementations must write the parcel row and its status history rows in
// the same transaction so a partially applied lifecycle change is never
// observable.
type ParcelRepository interface {
	// Add persists a new parcel together with its seeded history entry.
	// A tracking id collision surfaces as a Conflict error.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel, appending any new
	// history entries. The write is conditional on the status the parcel
	// held when it was read (expectedStatus); if another writer moved the
	// parcel in the meantime the update affects no rows and a Conflict
	// error is returned instead of clobbering the newer state.
	Update(ctx context.Context, aggregate *parcel.Parcel, expectedStatus parcel.Status) error

	// Get retrieves a parcel with its full history by record id.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel with its full history by its
	// public tracking identifier.
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)

	// ExistsByTrackingID reports whether any parcel already carries the
	// candidate tracking id. Used by the collision-regenerate loop.
	ExistsByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (bool, error)

	// Delete hard-deletes a parcel and its history rows.
	// Returns a NotFound error when no parcel has the id.
	Delete(ctx context.Context, id kernel.UUID) error
}
