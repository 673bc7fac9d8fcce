package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to homes. SMS
// delivery is separate; these rows back the dashboard bell feed.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	HomeID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type      enums.NotificationType `gorm:"type:text;not null"`
	Title     string                 `gorm:"type:text;not null"`
	Message   string                 `gorm:"type:text;not null"`
	Link      *string                `gorm:"type:text"`
	ReadAt    *time.Time             `gorm:"type:timestamptz"`
	CreatedAt time.Time              `gorm:"type:timestamptz;default:now()"`
}
