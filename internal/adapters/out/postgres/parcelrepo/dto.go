// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The status history lives in its own table and is written in the same
// transaction as the parcel row.
type ParcelDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`

	ReceiverName    string `gorm:"type:varchar(255);not null"`
	ReceiverEmail   string `gorm:"type:varchar(255);not null;index"`
	ReceiverPhone   string `gorm:"type:varchar(64);not null"`
	ReceiverAddress string `gorm:"type:text;not null"`

	ParcelType    string  `gorm:"type:varchar(32);not null"`
	WeightKg      float64 `gorm:"type:numeric(10,3);not null"`
	Dimensions    string  `gorm:"type:varchar(255)"`
	Description   string  `gorm:"type:text;not null"`
	DeclaredValue float64 `gorm:"type:numeric(12,2)"`

	PreferredDeliveryDate *time.Time
	DeliveryInstructions  string `gorm:"type:text"`
	Urgency               string `gorm:"type:varchar(16);not null;index"`

	BaseFee    float64 `gorm:"type:numeric(12,2);not null"`
	WeightFee  float64 `gorm:"type:numeric(12,2);not null"`
	UrgencyFee float64 `gorm:"type:numeric(12,2);not null"`
	TotalFee   float64 `gorm:"type:numeric(12,2);not null"`
	Discount   float64 `gorm:"type:numeric(12,2)"`
	CouponCode string  `gorm:"type:varchar(64)"`

	CurrentStatus string `gorm:"type:varchar(32);not null;index"`
	IsBlocked     bool   `gorm:"not null;default:false"`
	IsCancelled   bool   `gorm:"not null;default:false"`

	PersonnelID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
	DeliveredAt *time.Time

	History []StatusHistoryDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusHistoryDTO represents one audit-log row of a parcel's status history.
// Rows are append-only; the surrogate id preserves insertion order for
// entries that share a timestamp.
type StatusHistoryDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	ParcelID uuid.UUID `gorm:"type:uuid;not null;index"`

	Status     string    `gorm:"type:varchar(32);not null"`
	RecordedAt time.Time `gorm:"not null"`

	ActorKind   string     `gorm:"type:varchar(16);not null"`
	ActorUserID *uuid.UUID `gorm:"type:uuid"`
	ActorEmail  string     `gorm:"type:varchar(255)"`

	Location string `gorm:"type:varchar(255)"`
	Note     string `gorm:"type:text"`
}

// TableName specifies the database table name for status history entries.
func (StatusHistoryDTO) TableName() string {
	return "parcel_status_history"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	parcelID := aggregate.ID().Bytes()

	history := make([]StatusHistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, historyFromDomain(parcelID, entry))
	}

	var personnelID *uuid.UUID
	if aggregate.Personnel() != nil {
		raw := aggregate.Personnel().Bytes()
		personnelID = &raw
	}

	return ParcelDTO{
		ID:         parcelID,
		TrackingID: aggregate.TrackingID().String(),
		SenderID:   aggregate.SenderID().Bytes(),

		ReceiverName:    aggregate.Receiver().Name(),
		ReceiverEmail:   aggregate.Receiver().Email(),
		ReceiverPhone:   aggregate.Receiver().Phone(),
		ReceiverAddress: aggregate.Receiver().Address(),

		ParcelType:    aggregate.Details().Type().String(),
		WeightKg:      aggregate.Details().WeightKg(),
		Dimensions:    aggregate.Details().Dimensions(),
		Description:   aggregate.Details().Description(),
		DeclaredValue: aggregate.Details().DeclaredValue(),

		PreferredDeliveryDate: aggregate.Delivery().PreferredDeliveryDate(),
		DeliveryInstructions:  aggregate.Delivery().Instructions(),
		Urgency:               string(aggregate.Delivery().Urgency()),

		BaseFee:    aggregate.Pricing().BaseFee(),
		WeightFee:  aggregate.Pricing().WeightFee(),
		UrgencyFee: aggregate.Pricing().UrgencyFee(),
		TotalFee:   aggregate.Pricing().TotalFee(),
		Discount:   aggregate.Pricing().Discount(),
		CouponCode: aggregate.Pricing().CouponCode(),

		CurrentStatus: string(aggregate.Status()),
		IsBlocked:     aggregate.IsBlocked(),
		IsCancelled:   aggregate.IsCancelled(),

		PersonnelID: personnelID,

		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		DeliveredAt: aggregate.DeliveredAt(),

		History: history,
	}
}

// historyFromDomain converts one history entry to its row representation.
func historyFromDomain(parcelID uuid.UUID, entry parcel.HistoryEntry) StatusHistoryDTO {
	var actorUserID *uuid.UUID
	if id, ok := entry.UpdatedBy().UserID(); ok {
		raw := id.Bytes()
		actorUserID = &raw
	}

	return StatusHistoryDTO{
		ParcelID:    parcelID,
		Status:      string(entry.Status()),
		RecordedAt:  entry.Timestamp(),
		ActorKind:   string(entry.UpdatedBy().Kind()),
		ActorUserID: actorUserID,
		ActorEmail:  entry.UpdatedBy().Email(),
		Location:    entry.Location(),
		Note:        entry.Note(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including the status history using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := parcel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	receiver, err := parcel.NewReceiver(
		dto.ReceiverName, dto.ReceiverEmail, dto.ReceiverPhone, dto.ReceiverAddress)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		parcel.ParcelType(dto.ParcelType), dto.WeightKg, dto.Dimensions, dto.Description, dto.DeclaredValue)
	if err != nil {
		return nil, err
	}

	delivery, err := parcel.NewDeliveryInfo(
		dto.PreferredDeliveryDate, dto.DeliveryInstructions, parcel.Urgency(dto.Urgency))
	if err != nil {
		return nil, err
	}

	pricing := parcel.RestorePricing(
		dto.BaseFee, dto.WeightFee, dto.UrgencyFee, dto.TotalFee, dto.Discount, dto.CouponCode)

	status, err := parcel.StatusFromString(dto.CurrentStatus)
	if err != nil {
		return nil, err
	}

	history := make([]parcel.HistoryEntry, 0, len(dto.History))
	for _, row := range dto.History {
		entry, entryErr := historyToDomain(row)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var personnelID *kernel.UUID
	if dto.PersonnelID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.PersonnelID)[:])
		if pErr != nil {
			return nil, pErr
		}
		personnelID = &pID
	}

	return parcel.RestoreParcel(
		id, trackingID, senderID,
		receiver, details, delivery, pricing,
		status, history,
		dto.IsBlocked, dto.IsCancelled,
		personnelID,
		dto.CreatedAt, dto.UpdatedAt, dto.DeliveredAt,
	)
}

// historyToDomain converts a status history row to its domain entry.
func historyToDomain(dto StatusHistoryDTO) (parcel.HistoryEntry, error) {
	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	var actor parcel.ActorRef
	if dto.ActorKind == string(parcel.ActorKindUnregistered) {
		actor, err = parcel.NewUnregisteredActorRef(dto.ActorEmail)
	} else {
		var userID kernel.UUID
		if dto.ActorUserID != nil {
			userID, err = kernel.UUIDFromBytes((*dto.ActorUserID)[:])
			if err != nil {
				return parcel.HistoryEntry{}, err
			}
		}
		actor, err = parcel.NewUserActorRef(userID)
	}
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	return parcel.RestoreHistoryEntry(status, dto.RecordedAt, actor, dto.Location, dto.Note)
}
