// Package gormstore keeps CZML documents in a SQL table through gorm,
// backed by SQLite or Postgres.
package gormstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/OCAP2/czml/internal/config"
	"github.com/OCAP2/czml/internal/database"
	"github.com/OCAP2/czml/pkg/czml"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Dialect selects the database driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Config holds gorm backend configuration.
type Config struct {
	Dialect    Dialect
	SQLitePath string
	Postgres   config.PostgresConfig

	// DB, when set, is used instead of opening a connection.
	DB *gorm.DB
}

// Document is one stored CZML document.
type Document struct {
	ID          uint           `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string         `gorm:"size:255;uniqueIndex;not null"`
	PacketCount int            `gorm:"not null"`
	Body        datatypes.JSON `gorm:"not null"`
}

// TableName overrides the default pluralised name.
func (Document) TableName() string {
	return "czml_documents"
}

var errNotInitialized = errors.New("gormstore: not initialized")

// Backend implements storage.Backend and storage.Reader over gorm.
type Backend struct {
	cfg Config
	db  *gorm.DB
	log zerolog.Logger
}

// New creates a gorm backend. Init opens the connection.
func New(cfg Config, log zerolog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// Init connects (unless a DB was injected) and migrates the schema.
func (b *Backend) Init() error {
	db := b.cfg.DB
	if db == nil {
		var err error
		switch b.cfg.Dialect {
		case DialectPostgres:
			db, err = database.OpenPostgres(b.cfg.Postgres, b.log)
		case DialectSQLite:
			db, err = database.OpenSqlite(b.cfg.SQLitePath, b.log)
		default:
			err = fmt.Errorf("unknown dialect: %q", b.cfg.Dialect)
		}
		if err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.db = db
	b.log.Info().Str("dialect", db.Dialector.Name()).Msg("Document store ready")
	return nil
}

// Close closes the underlying connection.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// Save upserts the document by name and returns "<table>/<name>".
func (b *Backend) Save(ctx context.Context, name string, doc *czml.Document) (string, error) {
	if b.db == nil {
		return "", errNotInitialized
	}

	var body bytes.Buffer
	if err := doc.Encode(&body); err != nil {
		return "", err
	}

	row := Document{
		Name:        name,
		PacketCount: doc.Len(),
		Body:        datatypes.JSON(body.Bytes()),
	}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"packet_count", "body", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return "", fmt.Errorf("failed to save document %q: %w", name, err)
	}

	b.log.Debug().Str("name", name).Int("packets", row.PacketCount).Int("bytes", body.Len()).
		Msg("Saved document")
	return Document{}.TableName() + "/" + name, nil
}

// List returns stored document names in name order.
func (b *Backend) List(ctx context.Context) ([]string, error) {
	if b.db == nil {
		return nil, errNotInitialized
	}
	var names []string
	err := b.db.WithContext(ctx).Model(&Document{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return names, nil
}

// Load returns the stored document body.
func (b *Backend) Load(ctx context.Context, name string) ([]byte, error) {
	if b.db == nil {
		return nil, errNotInitialized
	}
	var row Document
	err := b.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("document %q: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", name, err)
	}
	return []byte(row.Body), nil
}
