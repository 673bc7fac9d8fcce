package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the per-user settings written during tenant onboarding,
// including the owner's SMS notification preferences.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HomeID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName    string    `gorm:"column:full_name;type:text;not null"`
	PhoneNumber *string   `gorm:"column:phone_number;type:text"`
	SMSEnabled  bool      `gorm:"column:sms_enabled;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
