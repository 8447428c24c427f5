// Package userrepo provides data transfer objects and mapping functions for user account persistence.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user accounts.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role      string    `gorm:"type:varchar(16);not null;index"`
	IsBlocked bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(user *account.User) UserDTO {
	return UserDTO{
		ID:        user.ID().Bytes(),
		Name:      user.Name(),
		Email:     user.Email(),
		Role:      string(user.Role()),
		IsBlocked: user.IsBlocked(),
	}
}

// toDomain converts a database DTO to a user entity.
func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return account.RestoreUser(id, dto.Name, dto.Email, role, dto.IsBlocked)
}
