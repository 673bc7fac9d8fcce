package cases

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/pagination"
)

// Repository exposes persistence helpers for case records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, homeID, caseID uuid.UUID) (*models.Case, error)
	List(ctx context.Context, params listCasesParams) ([]models.Case, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a cases repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listCasesParams struct {
	HomeID uuid.UUID
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) GetByID(ctx context.Context, homeID, caseID uuid.UUID) (*models.Case, error) {
	var row models.Case
	if err := r.db.WithContext(ctx).
		First(&row, "id = ? AND home_id = ?", caseID, homeID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listCasesParams) ([]models.Case, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Case{}).Where("home_id = ?", params.HomeID)
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Case
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}
