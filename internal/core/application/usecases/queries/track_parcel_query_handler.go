package queries

import (
	"context"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackParcelQueryHandler handles TrackParcelQuery.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

func NewTrackParcelQueryHandler(db *gorm.DB) (TrackParcelQueryHandler, error) {
	if db == nil {
		return TrackParcelQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return TrackParcelQueryHandler{db: db}, nil
}

func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	row, err := fetchParcelRow(ctx, h.db, "tracking_id", query.TrackingID().String())
	if err != nil {
		return ParcelResponse{}, err
	}

	history, err := fetchHistory(ctx, h.db, row.ID)
	if err != nil {
		return ParcelResponse{}, err
	}

	return toParcelResponse(row, history), nil
}
