package models

import (
	"time"

	"github.com/google/uuid"
)

// Case mirrors the cases relation in the hosted store. Rows created by the
// legacy intake flow are sparse, so almost every column is nullable; the
// cases package owns turning a raw row into the canonical shape.
type Case struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HomeID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CaseNumber      *string   `gorm:"column:case_number;type:text"`
	DeceasedName    *string   `gorm:"column:deceased_name;type:text"`
	CaseType        *string   `gorm:"column:case_type;type:text"`
	NextOfKinName   *string   `gorm:"column:next_of_kin_name;type:text"`
	LocationOfDeath *string   `gorm:"column:location_of_death;type:text"`
	PhotoURL        *string   `gorm:"column:photo_url;type:text"`
	ServiceDate     *string   `gorm:"column:service_date;type:text"`
	Status          *string   `gorm:"column:status;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz;default:now()"`
}
