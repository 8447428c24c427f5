package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// CreateParcelRequest is the body of POST /api/v1/parcels.
type CreateParcelRequest struct {
	ReceiverName    string `json:"receiverName"`
	ReceiverEmail   string `json:"receiverEmail"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`

	Type          string  `json:"type"`
	WeightKg      float64 `json:"weightKg"`
	Dimensions    string  `json:"dimensions"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declaredValue"`

	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate"`
	DeliveryInstructions  string     `json:"deliveryInstructions"`
	Urgency               string     `json:"urgency"`

	Discount   float64 `json:"discount"`
	CouponCode string  `json:"couponCode"`
}

func (r CreateParcelRequest) toPayload() commands.CreateParcelPayload {
	return commands.CreateParcelPayload{
		ReceiverName:    r.ReceiverName,
		ReceiverEmail:   r.ReceiverEmail,
		ReceiverPhone:   r.ReceiverPhone,
		ReceiverAddress: r.ReceiverAddress,

		ParcelType:    r.Type,
		WeightKg:      r.WeightKg,
		Dimensions:    r.Dimensions,
		Description:   r.Description,
		DeclaredValue: r.DeclaredValue,

		PreferredDeliveryDate: r.PreferredDeliveryDate,
		DeliveryInstructions:  r.DeliveryInstructions,
		Urgency:               r.Urgency,

		Discount:   r.Discount,
		CouponCode: r.CouponCode,
	}
}

// UpdateParcelRequest is the body of PATCH /api/v1/parcels/:id. Absent fields
// leave the stored value untouched.
type UpdateParcelRequest struct {
	ReceiverName    *string `json:"receiverName"`
	ReceiverEmail   *string `json:"receiverEmail"`
	ReceiverPhone   *string `json:"receiverPhone"`
	ReceiverAddress *string `json:"receiverAddress"`

	Type          *string  `json:"type"`
	WeightKg      *float64 `json:"weightKg"`
	Dimensions    *string  `json:"dimensions"`
	Description   *string  `json:"description"`
	DeclaredValue *float64 `json:"declaredValue"`

	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate"`
	DeliveryInstructions  *string    `json:"deliveryInstructions"`
	Urgency               *string    `json:"urgency"`
}

func (r UpdateParcelRequest) toPatch() parcel.UpdatePatch {
	var patch parcel.UpdatePatch

	if r.ReceiverName != nil || r.ReceiverEmail != nil || r.ReceiverPhone != nil || r.ReceiverAddress != nil {
		patch.Receiver = &parcel.ReceiverPatch{
			Name:    r.ReceiverName,
			Email:   r.ReceiverEmail,
			Phone:   r.ReceiverPhone,
			Address: r.ReceiverAddress,
		}
	}

	if r.Type != nil || r.WeightKg != nil || r.Dimensions != nil || r.Description != nil || r.DeclaredValue != nil {
		details := &parcel.DetailsPatch{
			WeightKg:      r.WeightKg,
			Dimensions:    r.Dimensions,
			Description:   r.Description,
			DeclaredValue: r.DeclaredValue,
		}
		if r.Type != nil {
			parcelType := parcel.ParcelType(*r.Type)
			details.Type = &parcelType
		}
		patch.Details = details
	}

	if r.PreferredDeliveryDate != nil || r.DeliveryInstructions != nil || r.Urgency != nil {
		delivery := &parcel.DeliveryPatch{
			PreferredDeliveryDate: r.PreferredDeliveryDate,
			Instructions:          r.DeliveryInstructions,
		}
		if r.Urgency != nil {
			urgency := parcel.Urgency(*r.Urgency)
			delivery.Urgency = &urgency
		}
		patch.Delivery = delivery
	}

	return patch
}

// UpdateStatusRequest is the body of PATCH /api/v1/parcels/:id/status.
type UpdateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

// CancelParcelRequest is the body of POST /api/v1/parcels/:id/cancel.
type CancelParcelRequest struct {
	Reason string `json:"reason"`
}

// ConfirmDeliveryRequest is the body of POST /api/v1/parcels/:id/confirm-delivery.
// The email is required only for receivers confirming without an account.
type ConfirmDeliveryRequest struct {
	Email string `json:"email"`
	Note  string `json:"note"`
}

// BlockParcelRequest is the body of PATCH /api/v1/parcels/:id/block.
type BlockParcelRequest struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
}

// AssignPersonnelRequest is the body of POST /api/v1/parcels/:id/assign.
type AssignPersonnelRequest struct {
	PersonnelID uuid.UUID `json:"personnelId"`
}

// ParcelView is the transport representation of a parcel aggregate returned
// by command endpoints.
type ParcelView struct {
	ID         uuid.UUID `json:"id"`
	TrackingID string    `json:"trackingId"`
	SenderID   uuid.UUID `json:"senderId"`

	ReceiverName    string `json:"receiverName"`
	ReceiverEmail   string `json:"receiverEmail"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`

	Type          string  `json:"type"`
	WeightKg      float64 `json:"weightKg"`
	Dimensions    string  `json:"dimensions,omitempty"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declaredValue,omitempty"`

	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`
	DeliveryInstructions  string     `json:"deliveryInstructions,omitempty"`
	Urgency               string     `json:"urgency"`

	BaseFee    float64 `json:"baseFee"`
	WeightFee  float64 `json:"weightFee"`
	UrgencyFee float64 `json:"urgencyFee"`
	TotalFee   float64 `json:"totalFee"`
	Discount   float64 `json:"discount,omitempty"`
	CouponCode string  `json:"couponCode,omitempty"`

	Status        string             `json:"status"`
	StatusHistory []HistoryEntryView `json:"statusHistory"`
	IsBlocked     bool               `json:"isBlocked"`
	IsCancelled   bool               `json:"isCancelled"`
	PersonnelID   *uuid.UUID         `json:"personnelId,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// HistoryEntryView is one audit-log record in the transport representation.
type HistoryEntryView struct {
	Status      string     `json:"status"`
	Timestamp   time.Time  `json:"timestamp"`
	ActorKind   string     `json:"actorKind"`
	ActorUserID *uuid.UUID `json:"actorUserId,omitempty"`
	ActorEmail  string     `json:"actorEmail,omitempty"`
	Location    string     `json:"location,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// parcelView maps the aggregate onto its transport representation.
func parcelView(aggregate *parcel.Parcel) ParcelView {
	history := make([]HistoryEntryView, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		var actorUserID *uuid.UUID
		if id, ok := entry.UpdatedBy().UserID(); ok {
			raw := id.Bytes()
			actorUserID = &raw
		}
		history = append(history, HistoryEntryView{
			Status:      string(entry.Status()),
			Timestamp:   entry.Timestamp(),
			ActorKind:   string(entry.UpdatedBy().Kind()),
			ActorUserID: actorUserID,
			ActorEmail:  entry.UpdatedBy().Email(),
			Location:    entry.Location(),
			Note:        entry.Note(),
		})
	}

	var personnelID *uuid.UUID
	if aggregate.Personnel() != nil {
		raw := aggregate.Personnel().Bytes()
		personnelID = &raw
	}

	return ParcelView{
		ID:         aggregate.ID().Bytes(),
		TrackingID: aggregate.TrackingID().String(),
		SenderID:   aggregate.SenderID().Bytes(),

		ReceiverName:    aggregate.Receiver().Name(),
		ReceiverEmail:   aggregate.Receiver().Email(),
		ReceiverPhone:   aggregate.Receiver().Phone(),
		ReceiverAddress: aggregate.Receiver().Address(),

		Type:          aggregate.Details().Type().String(),
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

		Status:        string(aggregate.Status()),
		StatusHistory: history,
		IsBlocked:     aggregate.IsBlocked(),
		IsCancelled:   aggregate.IsCancelled(),
		PersonnelID:   personnelID,

		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
}
