package models

import (
	"time"

	"github.com/google/uuid"
)

// FuneralHome is the tenant boundary. Every other table hangs off a home.
type FuneralHome struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Phone     *string   `gorm:"type:text"`
	Timezone  string    `gorm:"type:text;not null;default:'America/Chicago'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
