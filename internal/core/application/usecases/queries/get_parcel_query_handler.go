package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler handles GetParcelQuery.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) (GetParcelQueryHandler, error) {
	if db == nil {
		return GetParcelQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return GetParcelQueryHandler{db: db}, nil
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	row, err := fetchParcelRow(ctx, h.db, "id", query.ParcelID().Bytes())
	if err != nil {
		return ParcelResponse{}, err
	}

	if !canViewParcel(query.Principal(), row) {
		return ParcelResponse{}, errs.NewForbiddenError("parcel belongs to another customer")
	}

	history, err := fetchHistory(ctx, h.db, row.ID)
	if err != nil {
		return ParcelResponse{}, err
	}

	return toParcelResponse(row, history), nil
}

// canViewParcel applies the role-scoped visibility rule.
func canViewParcel(principal account.Principal, row parcelRow) bool {
	switch principal.Role() {
	case account.RoleAdmin:
		return true
	case account.RoleSender:
		return row.SenderID == principal.UserID().Bytes()
	case account.RoleReceiver:
		return row.ReceiverEmail == principal.Email()
	default:
		return false
	}
}
