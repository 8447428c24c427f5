package userrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new user account. A unique-index hit on the email surfaces as
// a Conflict error.
func (r *GormUserRepository) Add(ctx context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := fromDomain(user)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("email", dto.Email, err)
		}
		return err
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

// Update saves an existing user account.
func (r *GormUserRepository) Update(ctx context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := fromDomain(user)

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "email", "role", "is_blocked").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", user.ID().String())
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

// Get retrieves a user account by id.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*account.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByEmail retrieves a user account by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email)
		}
		return nil, err
	}

	return toDomain(dto)
}
