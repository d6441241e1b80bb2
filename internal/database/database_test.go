package database

import (
	"path/filepath"
	"testing"

	"github.com/OCAP2/czml/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSqlite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "czml.db")
	db, err := OpenSqlite(path, zerolog.Nop())
	require.NoError(t, err)

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode;").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
	assert.FileExists(t, path)
}

func TestOpenSqlite_Memory(t *testing.T) {
	db, err := OpenSqlite("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

func TestOpenPostgres_Unreachable(t *testing.T) {
	_, err := OpenPostgres(config.PostgresConfig{
		Host: "127.0.0.1", Port: "1", Username: "u", Password: "p", Database: "d",
	}, zerolog.Nop())
	assert.Error(t, err)
}
