package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/models"
)

func TestInitDBSqlite(t *testing.T) {
	cfg := &Config{
		DB_TYPE: "sqlite",
		DB_PATH: filepath.Join(t.TempDir(), "bakehouse.db"),
	}

	db, err := InitDB(cfg)
	require.NoError(t, err)

	// migrations ran: the schema accepts every entity
	require.NoError(t, db.Create(&models.Category{Name: "breads"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "rye", Price: 5}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestInitDBBadPostgresConfig(t *testing.T) {
	cfg := &Config{
		DB_TYPE: "postgres",
		DB_HOST: "127.0.0.1", DB_PORT: "1", // nothing listens there
		DB_USER: "u", DB_PASSWORD: "p", DB_NAME: "missing",
	}

	_, err := InitDB(cfg)
	require.Error(t, err, "a bad DSN must surface, not be swallowed")
}
