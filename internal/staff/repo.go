package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
)

// Repository exposes persistence helpers for the staff directory.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, member *models.StaffMember) error
	GetByID(ctx context.Context, homeID, memberID uuid.UUID) (*models.StaffMember, error)
	ListByHome(ctx context.Context, homeID uuid.UUID) ([]models.StaffMember, error)
	Update(ctx context.Context, homeID, memberID uuid.UUID, changes map[string]any) (int64, error)
	Delete(ctx context.Context, homeID, memberID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a staff repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, member *models.StaffMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, homeID, memberID uuid.UUID) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.WithContext(ctx).
		First(&member, "id = ? AND home_id = ?", memberID, homeID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repositoryImpl) ListByHome(ctx context.Context, homeID uuid.UUID) ([]models.StaffMember, error) {
	var members []models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("home_id = ?", homeID).
		Order("full_name ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repositoryImpl) Update(ctx context.Context, homeID, memberID uuid.UUID, changes map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.StaffMember{}).
		Where("id = ? AND home_id = ?", memberID, homeID).
		Updates(changes)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, homeID, memberID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND home_id = ?", memberID, homeID).
		Delete(&models.StaffMember{})
	return result.RowsAffected, result.Error
}
