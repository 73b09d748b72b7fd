package database

import (
	"hiphop_roadmap_backend/internal/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{"mysql", config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, DBName: "x", Charset: "utf8mb4"}, "mysql", false},
		{"postgres", config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, DBName: "x", SSLMode: "disable"}, "postgres", false},
		{"sqlite memory", config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "sqlite", false},
		{"unknown", config.DatabaseConfig{Driver: "oracle"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestInitDBAndMigrate(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "roadmap.db")}

	db, err := InitDB(&cfg, false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "skills", "progress", "personalizations"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
