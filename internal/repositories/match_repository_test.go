package repositories

import (
	"testing"
	"time"

	"amora_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMatchDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Match{}))
	return db
}

func TestGetOrCreate_CanonicalOrderIndependent(t *testing.T) {
	db := setupMatchDB(t)
	repo := NewMatchRepository()

	// Идентификаторы заданы так, что "b..." < "c..."
	userX := "b1a2c3d4-0000-0000-0000-000000000001"
	userY := "c1a2c3d4-0000-0000-0000-000000000002"

	first, created, err := repo.GetOrCreate(db, userY, userX, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, userX, first.UserAID, "меньший ID всегда в позиции A")
	assert.Equal(t, userY, first.UserBID)

	// Та же пара в обратном порядке - тот же матч
	second, created, err := repo.GetOrCreate(db, userX, userY, time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreate_DuplicateInsertResolved(t *testing.T) {
	db := setupMatchDB(t)
	repo := NewMatchRepository()

	userX := "b1a2c3d4-0000-0000-0000-000000000001"
	userY := "c1a2c3d4-0000-0000-0000-000000000002"

	// Строка уже в таблице - имитация проигранной гонки
	a, b := models.CanonicalPair(userX, userY)
	require.NoError(t, db.Create(&models.Match{
		UserAID: a, UserBID: b, MatchedAt: time.Now(), IsActive: true,
	}).Error)

	match, created, err := repo.GetOrCreate(db, userX, userY, time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, match)
}

func TestFindByPair_EitherOrder(t *testing.T) {
	db := setupMatchDB(t)
	repo := NewMatchRepository()

	userX := "b1a2c3d4-0000-0000-0000-000000000001"
	userY := "c1a2c3d4-0000-0000-0000-000000000002"

	created, _, err := repo.GetOrCreate(db, userX, userY, time.Now())
	require.NoError(t, err)

	m1, err := repo.FindByPair(db, userX, userY)
	require.NoError(t, err)
	m2, err := repo.FindByPair(db, userY, userX)
	require.NoError(t, err)
	assert.Equal(t, created.ID, m1.ID)
	assert.Equal(t, created.ID, m2.ID)
}

func TestDeactivate_MissingMatch(t *testing.T) {
	db := setupMatchDB(t)
	repo := NewMatchRepository()

	err := repo.Deactivate(db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
