package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/enums"
)

// StaffMember is a directory entry for one employee of a funeral home.
type StaffMember struct {
	ID           uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HomeID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	FullName     string                  `gorm:"column:full_name;type:text;not null"`
	Role         enums.StaffRole         `gorm:"type:text;not null"`
	Availability enums.StaffAvailability `gorm:"type:text;not null;default:'available'"`
	Phone        *string                 `gorm:"type:text"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
