package queries

import (
	"context"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSummary is one row of the users list read model.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsersResponse is a page of users plus the pagination metadata.
type ListUsersResponse struct {
	Items []UserSummary `json:"items"`
	Meta  listing.Meta  `json:"meta"`
}

// userRow mirrors the columns of the users table for read-side scanning.
type userRow struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	IsBlocked bool
	CreatedAt time.Time
}

// ListUsersQueryHandler handles ListUsersQuery.
type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) (ListUsersQueryHandler, error) {
	if db == nil {
		return ListUsersQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return ListUsersQueryHandler{db: db}, nil
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (ListUsersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListUsersResponse{}, err
	}
	if !query.Principal().IsAdmin() {
		return ListUsersResponse{}, errs.NewForbiddenError("only admins can list user accounts")
	}

	base := h.db.WithContext(ctx).Table("users")

	var total int64
	if err := query.Listing().ApplyFilter(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return ListUsersResponse{}, err
	}

	var rows []userRow
	if err := query.Listing().ApplyPage(base.Session(&gorm.Session{})).Find(&rows).Error; err != nil {
		return ListUsersResponse{}, err
	}

	items := make([]UserSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, UserSummary{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Role:      row.Role,
			IsBlocked: row.IsBlocked,
			CreatedAt: row.CreatedAt,
		})
	}

	return ListUsersResponse{
		Items: items,
		Meta:  query.Listing().Meta(total),
	}, nil
}
