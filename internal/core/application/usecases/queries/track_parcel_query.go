package queries

import (
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// TrackParcelQuery retrieves a parcel with its status history by tracking id.
// The tracking endpoint is public: knowing a valid tracking id is the
// credential, no principal is required.
type TrackParcelQuery struct {
	trackingID parcel.TrackingID

	guard guard.ConstructorGuard
}

func NewTrackParcelQuery(trackingID string) (TrackParcelQuery, error) {
	id, err := parcel.TrackingIDFromString(trackingID)
	if err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingID: id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q TrackParcelQuery) TrackingID() parcel.TrackingID {
	return q.trackingID
}

func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(errs.NewValueIsRequiredError("TrackParcelQuery"))
}
