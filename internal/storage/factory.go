package storage

import (
	"fmt"
	"log/slog"

	"github.com/OCAP2/czml/internal/config"
	"github.com/OCAP2/czml/internal/storage/file"
	"github.com/OCAP2/czml/internal/storage/gormstore"
	"github.com/OCAP2/czml/internal/storage/websocket"
	"github.com/rs/zerolog"
)

var (
	_ Reader = (*file.Backend)(nil)
	_ Reader = (*gormstore.Backend)(nil)

	_ Backend = (*file.Backend)(nil)
	_ Backend = (*gormstore.Backend)(nil)
	_ Backend = (*websocket.Backend)(nil)
)

// NewBackend creates a storage backend based on configuration. The backend is
// not initialized.
func NewBackend(cfg config.StorageConfig, logger *slog.Logger, dbLog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "file":
		return file.New(file.Config{
			OutputDir:      cfg.File.OutputDir,
			CompressOutput: cfg.File.CompressOutput,
		}), nil
	case "sqlite":
		return gormstore.New(gormstore.Config{Dialect: gormstore.DialectSQLite, SQLitePath: cfg.SQLite.Path}, dbLog), nil
	case "postgres":
		return gormstore.New(gormstore.Config{Dialect: gormstore.DialectPostgres, Postgres: cfg.Postgres}, dbLog), nil
	case "websocket":
		return websocket.New(websocket.Config{URL: cfg.WebSocket.URL, Secret: cfg.WebSocket.Secret}, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// AsReader returns b as a Reader if it can serve documents back.
func AsReader(b Backend) (Reader, bool) {
	r, ok := b.(Reader)
	return r, ok
}
