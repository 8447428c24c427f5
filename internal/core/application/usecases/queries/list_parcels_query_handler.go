package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParcelSummary is one row of the parcels list read model. The history is
// deliberately absent here, GetParcelQuery carries it for a single parcel.
type ParcelSummary struct {
	ID            uuid.UUID `json:"id"`
	TrackingID    string    `json:"trackingId"`
	SenderID      uuid.UUID `json:"senderId"`
	ReceiverName  string    `json:"receiverName"`
	ReceiverEmail string    `json:"receiverEmail"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Urgency       string    `json:"urgency"`
	TotalFee      float64   `json:"totalFee"`
	IsBlocked     bool      `json:"isBlocked"`
	IsCancelled   bool      `json:"isCancelled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListParcelsResponse is a page of parcels plus the pagination metadata.
type ListParcelsResponse struct {
	Items []ParcelSummary `json:"items"`
	Meta  listing.Meta    `json:"meta"`
}

// ListParcelsQueryHandler handles ListParcelsQuery.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) (ListParcelsQueryHandler, error) {
	if db == nil {
		return ListParcelsQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return ListParcelsQueryHandler{db: db}, nil
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (ListParcelsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListParcelsResponse{}, err
	}

	scoped := h.scope(query.Principal(), h.db.WithContext(ctx).Table("parcels"))

	// The count runs through the same filter as the page so the metadata
	// total matches what the client can actually page over.
	var total int64
	if err := query.Listing().ApplyFilter(scoped.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return ListParcelsResponse{}, err
	}

	var rows []parcelRow
	if err := query.Listing().ApplyPage(scoped.Session(&gorm.Session{})).Find(&rows).Error; err != nil {
		return ListParcelsResponse{}, err
	}

	items := make([]ParcelSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, ParcelSummary{
			ID:            row.ID,
			TrackingID:    row.TrackingID,
			SenderID:      row.SenderID,
			ReceiverName:  row.ReceiverName,
			ReceiverEmail: row.ReceiverEmail,
			Type:          row.ParcelType,
			Status:        row.CurrentStatus,
			Urgency:       row.Urgency,
			TotalFee:      row.TotalFee,
			IsBlocked:     row.IsBlocked,
			IsCancelled:   row.IsCancelled,
			CreatedAt:     row.CreatedAt,
		})
	}

	return ListParcelsResponse{
		Items: items,
		Meta:  query.Listing().Meta(total),
	}, nil
}

// scope narrows the statement to the parcels the caller may see.
func (h ListParcelsQueryHandler) scope(principal account.Principal, tx *gorm.DB) *gorm.DB {
	switch principal.Role() {
	case account.RoleAdmin:
		return tx
	case account.RoleReceiver:
		return tx.Where("receiver_email = ?", principal.Email())
	default:
		return tx.Where("sender_id = ?", principal.UserID().Bytes())
	}
}
