// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries go straight to the database and return read models shaped for the
// transport layer, bypassing the aggregate.
package queries

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parcelRow mirrors the columns of the parcels table for read-side scanning.
type parcelRow struct {
	ID                    uuid.UUID
	TrackingID            string
	SenderID              uuid.UUID
	ReceiverName          string
	ReceiverEmail         string
	ReceiverPhone         string
	ReceiverAddress       string
	ParcelType            string
	WeightKg              float64
	Dimensions            string
	Description           string
	DeclaredValue         float64
	PreferredDeliveryDate *time.Time
	DeliveryInstructions  string
	Urgency               string
	BaseFee               float64
	WeightFee             float64
	UrgencyFee            float64
	TotalFee              float64
	Discount              float64
	CouponCode            string
	CurrentStatus         string
	IsBlocked             bool
	IsCancelled           bool
	PersonnelID           *uuid.UUID
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeliveredAt           *time.Time
}

// historyRow mirrors the columns of the parcel_status_history table.
type historyRow struct {
	ParcelID    uuid.UUID
	Status      string
	RecordedAt  time.Time
	ActorKind   string
	ActorUserID *uuid.UUID
	ActorEmail  string
	Location    string
	Note        string
}

// HistoryEntryResponse is one audit-log record in the read model.
type HistoryEntryResponse struct {
	Status      string     `json:"status"`
	Timestamp   time.Time  `json:"timestamp"`
	ActorKind   string     `json:"actorKind"`
	ActorUserID *uuid.UUID `json:"actorUserId,omitempty"`
	ActorEmail  string     `json:"actorEmail,omitempty"`
	Location    string     `json:"location,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// ParcelResponse is the full parcel read model including the status history.
type ParcelResponse struct {
	ID          uuid.UUID `json:"id"`
	TrackingID  string    `json:"trackingId"`
	SenderID    uuid.UUID `json:"senderId"`
	Receiver    ReceiverResponse       `json:"receiver"`
	Details     DetailsResponse        `json:"details"`
	Delivery    DeliveryResponse       `json:"delivery"`
	Pricing     PricingResponse        `json:"pricing"`
	Status      string                 `json:"status"`
	History     []HistoryEntryResponse `json:"statusHistory"`
	IsBlocked   bool                   `json:"isBlocked"`
	IsCancelled bool                   `json:"isCancelled"`
	PersonnelID *uuid.UUID             `json:"personnelId,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	DeliveredAt *time.Time             `json:"deliveredAt,omitempty"`
}

// ReceiverResponse is the receiver snapshot in the read model.
type ReceiverResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DetailsResponse is the physical description in the read model.
type DetailsResponse struct {
	Type          string  `json:"type"`
	WeightKg      float64 `json:"weightKg"`
	Dimensions    string  `json:"dimensions,omitempty"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declaredValue,omitempty"`
}

// DeliveryResponse is the delivery preferences in the read model.
type DeliveryResponse struct {
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`
	Instructions          string     `json:"instructions,omitempty"`
	Urgency               string     `json:"urgency"`
}

// PricingResponse is the fee breakdown in the read model.
type PricingResponse struct {
	BaseFee    float64 `json:"baseFee"`
	WeightFee  float64 `json:"weightFee"`
	UrgencyFee float64 `json:"urgencyFee"`
	TotalFee   float64 `json:"totalFee"`
	Discount   float64 `json:"discount,omitempty"`
	CouponCode string  `json:"couponCode,omitempty"`
}

// fetchParcelRow loads a single parcel row by an indexed column.
// Maps gorm's not-found to the NotFound taxonomy.
func fetchParcelRow(ctx context.Context, db *gorm.DB, column string, value any) (parcelRow, error) {
	var row parcelRow
	err := db.WithContext(ctx).Table("parcels").Where(column+" = ?", value).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return parcelRow{}, errs.NewObjectNotFoundError(column, value)
		}
		return parcelRow{}, err
	}
	return row, nil
}

// fetchHistory loads the audit log for a parcel, oldest first.
func fetchHistory(ctx context.Context, db *gorm.DB, parcelID uuid.UUID) ([]HistoryEntryResponse, error) {
	var rows []historyRow
	err := db.WithContext(ctx).
		Table("parcel_status_history").
		Where("parcel_id = ?", parcelID).
		Order("recorded_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntryResponse, 0, len(rows))
	for _, r := range rows {
		history = append(history, HistoryEntryResponse{
			Status:      r.Status,
			Timestamp:   r.RecordedAt,
			ActorKind:   r.ActorKind,
			ActorUserID: r.ActorUserID,
			ActorEmail:  r.ActorEmail,
			Location:    r.Location,
			Note:        r.Note,
		})
	}
	return history, nil
}

// toParcelResponse assembles the full read model from a row and its history.
func toParcelResponse(row parcelRow, history []HistoryEntryResponse) ParcelResponse {
	return ParcelResponse{
		ID:         row.ID,
		TrackingID: row.TrackingID,
		SenderID:   row.SenderID,
		Receiver: ReceiverResponse{
			Name:    row.ReceiverName,
			Email:   row.ReceiverEmail,
			Phone:   row.ReceiverPhone,
			Address: row.ReceiverAddress,
		},
		Details: DetailsResponse{
			Type:          row.ParcelType,
			WeightKg:      row.WeightKg,
			Dimensions:    row.Dimensions,
			Description:   row.Description,
			DeclaredValue: row.DeclaredValue,
		},
		Delivery: DeliveryResponse{
			PreferredDeliveryDate: row.PreferredDeliveryDate,
			Instructions:          row.DeliveryInstructions,
			Urgency:               row.Urgency,
		},
		Pricing: PricingResponse{
			BaseFee:    row.BaseFee,
			WeightFee:  row.WeightFee,
			UrgencyFee: row.UrgencyFee,
			TotalFee:   row.TotalFee,
			Discount:   row.Discount,
			CouponCode: row.CouponCode,
		},
		Status:      row.CurrentStatus,
		History:     history,
		IsBlocked:   row.IsBlocked,
		IsCancelled: row.IsCancelled,
		PersonnelID: row.PersonnelID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		DeliveredAt: row.DeliveredAt,
	}
}
