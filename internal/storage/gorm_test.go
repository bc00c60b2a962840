package storage

import (
	"testing"

	"pollos-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGormStore(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	_, ok, err := s.Get("01-01-2024")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("02-01-2024", `{"orders":[]}`))
	require.NoError(t, s.Set("01-01-2024", `{"orders":[]}`))
	require.NoError(t, s.Set("01-01-2024", `{"orders":[1]}`))

	v, ok, err := s.Get("01-01-2024")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"orders":[1]}`, v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"01-01-2024", "02-01-2024"}, keys)

	require.NoError(t, s.Remove("01-01-2024"))
	_, ok, err = s.Get("01-01-2024")
	require.NoError(t, err)
	assert.False(t, ok)
}
