package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "pollos.db", cfg.DatabaseDSN)
	assert.Equal(t, 11.0, cfg.PriceFullChicken)
	assert.Equal(t, 6.0, cfg.PriceHalfChicken)
	assert.Nil(t, cfg.ScheduleLabels())
	assert.Len(t, cfg.Warnings(), 1)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PRICE_HALF_POTATO", "3")
	t.Setenv("SCHEDULE", "A, B,C,D,E,F,G")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 3.0, cfg.PriceHalfPotato)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, cfg.ScheduleLabels())
	assert.Len(t, cfg.Warnings(), 2)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "redis"}, "unknown STORE_DRIVER"},
		{"postgres without dsn", map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_DSN"},
		{"negative price", map[string]string{"PRICE_FULL_CHICKEN": "-1"}, "PRICE_FULL_CHICKEN"},
		{"short schedule", map[string]string{"SCHEDULE": "A,B"}, "7 localities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
