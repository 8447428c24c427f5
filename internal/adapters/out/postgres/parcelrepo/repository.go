package parcelrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
//
// The parcel row and its history rows are written through the same gorm
// statement handle, so when the repository is handed a transaction by the
// unit of work, the whole aggregate commits or rolls back as one.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database together with its seeded history
// entry. A unique-index hit on the tracking id surfaces as a Conflict error
// so the caller's collision-regenerate loop can react.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("trackingId", dto.TrackingID, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel. The write is conditional on the status the
// caller read the aggregate at: when another writer moved the parcel in the
// meantime, zero rows match and a Conflict error is returned instead of
// clobbering the newer state. History rows already persisted are left
// untouched; only entries appended since the read are inserted.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel, expectedStatus parcel.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND current_status = ?", dto.ID, string(expectedStatus)).
		Select("*").
		Omit("id", "created_at", "History").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("parcel", aggregate.ID().String())
	}

	if err := r.appendNewHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewHistory inserts the history rows the aggregate gained since it was
// loaded. Persisted rows are append-only, so everything past the stored count
// is new.
func (r *GormParcelRepository) appendNewHistory(ctx context.Context, dto ParcelDTO) error {
	var persisted int64
	err := r.db.WithContext(ctx).
		Model(&StatusHistoryDTO{}).
		Where("parcel_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}

	if int(persisted) >= len(dto.History) {
		return nil
	}

	newRows := dto.History[persisted:]
	return r.db.WithContext(ctx).Create(&newRows).Error
}

// Get retrieves a parcel with its full history by record id.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.getBy(ctx, "id = ?", id.Bytes(), "parcel", id.String())
}

// GetByTrackingID retrieves a parcel with its full history by its public
// tracking identifier.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}
	return r.getBy(ctx, "tracking_id = ?", trackingID.String(), "trackingId", trackingID.String())
}

func (r *GormParcelRepository) getBy(ctx context.Context, condition string, value any, paramName, paramValue string) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC, id ASC")
		}).
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, paramValue)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByTrackingID reports whether any parcel already carries the candidate
// tracking id.
func (r *GormParcelRepository) ExistsByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_id = ?", trackingID.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete hard-deletes a parcel; the history rows go with it through the
// cascading foreign key.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}
	return nil
}
