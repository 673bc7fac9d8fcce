package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
)

// Repository exposes persistence helpers for user profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
	GetByHome(ctx context.Context, homeID uuid.UUID) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, profileID uuid.UUID, smsEnabled bool, phoneNumber *string) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a profiles repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) GetByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByHome loads the owner profile for a home. Each home has a single owner
// profile written during onboarding.
func (r *repositoryImpl) GetByHome(ctx context.Context, homeID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).
		First(&profile, "home_id = ?", homeID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repositoryImpl) UpdatePreferences(ctx context.Context, profileID uuid.UUID, smsEnabled bool, phoneNumber *string) (int64, error) {
	changes := map[string]any{"sms_enabled": smsEnabled}
	if phoneNumber != nil {
		changes["phone_number"] = *phoneNumber
	}

	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profileID).
		Updates(changes)
	return result.RowsAffected, result.Error
}
