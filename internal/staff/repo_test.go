package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/enums"
)

func setupStaffTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS staff_members (
  id TEXT PRIMARY KEY,
  home_id TEXT NOT NULL,
  full_name TEXT NOT NULL,
  role TEXT NOT NULL,
  availability TEXT NOT NULL DEFAULT 'available',
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedMember(t *testing.T, db *gorm.DB, homeID uuid.UUID, name string, role enums.StaffRole) models.StaffMember {
	t.Helper()
	m := models.StaffMember{
		ID:           uuid.New(),
		HomeID:       homeID,
		FullName:     name,
		Role:         role,
		Availability: enums.AvailabilityAvailable,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestRepository_ListByHomeOrdersByName(t *testing.T) {
	db := setupStaffTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	seedMember(t, db, homeID, "Zelda Quist", enums.StaffRoleEmbalmer)
	seedMember(t, db, homeID, "Adam Boone", enums.StaffRoleFuneralDirector)
	seedMember(t, db, uuid.New(), "Other Tenant", enums.StaffRoleFuneralDirector)

	members, err := repo.ListByHome(ctx, homeID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Adam Boone", members[0].FullName)
	assert.Equal(t, "Zelda Quist", members[1].FullName)
}

func TestRepository_UpdateScopesToHome(t *testing.T) {
	db := setupStaffTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	m := seedMember(t, db, homeID, "Adam Boone", enums.StaffRoleFuneralDirector)

	affected, err := repo.Update(ctx, uuid.New(), m.ID, map[string]any{"availability": enums.AvailabilityUnavailable})
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Update(ctx, homeID, m.ID, map[string]any{"availability": enums.AvailabilityUnavailable})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := repo.GetByID(ctx, homeID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AvailabilityUnavailable, got.Availability)
}

func TestRepository_DeleteScopesToHome(t *testing.T) {
	db := setupStaffTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	homeID := uuid.New()
	m := seedMember(t, db, homeID, "Adam Boone", enums.StaffRoleRemovalTeam)

	affected, err := repo.Delete(ctx, uuid.New(), m.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, homeID, m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = repo.GetByID(ctx, homeID, m.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
