package cases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
)

func setupCasesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS cases (
  id TEXT PRIMARY KEY,
  home_id TEXT NOT NULL,
  case_number TEXT,
  deceased_name TEXT,
  case_type TEXT,
  next_of_kin_name TEXT,
  location_of_death TEXT,
  photo_url TEXT,
  service_date TEXT,
  status TEXT,
  created_at DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedCase(t *testing.T, db *gorm.DB, homeID uuid.UUID, createdAt time.Time, caseNumber *string) models.Case {
	t.Helper()
	row := models.Case{
		ID:         uuid.New(),
		HomeID:     homeID,
		CaseNumber: caseNumber,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestRepository_GetByIDScopesToHome(t *testing.T) {
	db := setupCasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	row := seedCase(t, db, homeID, time.Now().UTC(), nil)

	got, err := repo.GetByID(ctx, homeID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)

	_, err = repo.GetByID(ctx, uuid.New(), row.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListOrdersNewestFirst(t *testing.T) {
	db := setupCasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	oldest := seedCase(t, db, homeID, base.Add(-2*time.Hour), nil)
	middle := seedCase(t, db, homeID, base.Add(-time.Hour), nil)
	newest := seedCase(t, db, homeID, base, nil)
	seedCase(t, db, uuid.New(), base, nil) // other tenant, never visible

	rows, cursor, err := repo.List(ctx, listCasesParams{HomeID: homeID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Nil(t, cursor)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, middle.ID, rows[1].ID)
	assert.Equal(t, oldest.ID, rows[2].ID)
}

func TestRepository_ListPaginatesWithCursor(t *testing.T) {
	db := setupCasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		seedCase(t, db, homeID, base.Add(-time.Duration(i)*time.Hour), nil)
	}

	first, cursor, err := repo.List(ctx, listCasesParams{HomeID: homeID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, cursor)

	second, next, err := repo.List(ctx, listCasesParams{HomeID: homeID, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Nil(t, next)
	assert.True(t, second[0].CreatedAt.Before(first[1].CreatedAt))
}

func TestRepository_ListEmptyBackendYieldsEmptySlice(t *testing.T) {
	db := setupCasesTestDB(t)
	repo := NewRepository(db)

	rows, cursor, err := repo.List(context.Background(), listCasesParams{HomeID: uuid.New(), Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Nil(t, cursor)
}
