package queries

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ParcelStatsResponse is the dashboard read model.
//
// InTransitParcels groups everything physically moving (picked up, in
// transit, out for delivery), PendingParcels groups what is still waiting on
// approval or pickup, CancelledParcels groups every unsuccessful outcome.
// AverageDeliveryDays is "N/A" until at least one parcel has been delivered.
type ParcelStatsResponse struct {
	StatusCounts map[string]int64 `json:"statusCounts"`

	TotalParcels     int64 `json:"totalParcels"`
	DeliveredParcels int64 `json:"deliveredParcels"`
	InTransitParcels int64 `json:"inTransitParcels"`
	PendingParcels   int64 `json:"pendingParcels"`
	CancelledParcels int64 `json:"cancelledParcels"`

	MonthlyRevenue      float64 `json:"monthlyRevenue"`
	AverageDeliveryDays string  `json:"averageDeliveryDays"`
}

// ParcelStatsQueryHandler handles ParcelStatsQuery.
type ParcelStatsQueryHandler struct {
	db *gorm.DB
}

func NewParcelStatsQueryHandler(db *gorm.DB) (ParcelStatsQueryHandler, error) {
	if db == nil {
		return ParcelStatsQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return ParcelStatsQueryHandler{db: db}, nil
}

func (h ParcelStatsQueryHandler) Handle(ctx context.Context, query ParcelStatsQuery) (ParcelStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelStatsResponse{}, err
	}
	if !query.Principal().IsAdmin() {
		return ParcelStatsResponse{}, errs.NewForbiddenError("only admins can view parcel statistics")
	}

	counts, err := h.statusCounts(ctx)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	response := ParcelStatsResponse{StatusCounts: counts}
	for _, count := range counts {
		response.TotalParcels += count
	}
	response.DeliveredParcels = counts[string(parcel.StatusDelivered)]
	response.InTransitParcels = counts[string(parcel.StatusPickedUp)] +
		counts[string(parcel.StatusInTransit)] +
		counts[string(parcel.StatusOutForDelivery)]
	response.PendingParcels = counts[string(parcel.StatusRequested)] +
		counts[string(parcel.StatusApproved)]
	response.CancelledParcels = counts[string(parcel.StatusCancelled)] +
		counts[string(parcel.StatusReturned)] +
		counts[string(parcel.StatusFailedDelivery)]

	response.MonthlyRevenue, err = h.monthlyRevenue(ctx)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	response.AverageDeliveryDays, err = h.averageDeliveryDays(ctx)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	return response, nil
}

// statusCounts returns one bucket per known status, zeroed buckets included.
func (h ParcelStatsQueryHandler) statusCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CurrentStatus string
		Count         int64
	}
	err := h.db.WithContext(ctx).
		Raw("SELECT current_status, COUNT(*) AS count FROM parcels GROUP BY current_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(parcel.AllStatuses()))
	for _, status := range parcel.AllStatuses() {
		counts[string(status)] = 0
	}
	for _, row := range rows {
		counts[row.CurrentStatus] = row.Count
	}
	return counts, nil
}

// monthlyRevenue sums fees over the current calendar month, cancelled
// parcels excluded.
func (h ParcelStatsQueryHandler) monthlyRevenue(ctx context.Context) (float64, error) {
	monthStart := now.With(time.Now().UTC()).BeginningOfMonth()
	monthEnd := now.With(time.Now().UTC()).EndOfMonth()

	var revenue float64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(total_fee), 0)
		     FROM parcels
		     WHERE is_cancelled = false AND created_at BETWEEN ? AND ?`,
			monthStart, monthEnd).
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}

// averageDeliveryDays computes the mean created-to-delivered interval over
// delivered parcels, formatted to two decimals, or "N/A" when nothing has
// been delivered yet.
func (h ParcelStatsQueryHandler) averageDeliveryDays(ctx context.Context) (string, error) {
	var avgDays *float64
	err := h.db.WithContext(ctx).
		Raw(`SELECT AVG(EXTRACT(EPOCH FROM (delivered_at - created_at)) / 86400.0)
		     FROM parcels
		     WHERE delivered_at IS NOT NULL`).
		Scan(&avgDays).Error
	if err != nil {
		return "", err
	}
	if avgDays == nil {
		return "N/A", nil
	}
	return fmt.Sprintf("%.2f", *avgDays), nil
}
