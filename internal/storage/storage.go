package storage

import (
	"context"
	"io/fs"

	"github.com/OCAP2/czml/pkg/czml"
)

// ErrNotFound is returned by Reader.Load for unknown document names.
// Backends wrap fs.ErrNotExist so errors.Is works across packages.
var ErrNotFound = fs.ErrNotExist

// Backend is the interface all document sinks must satisfy.
type Backend interface {
	Init() error
	Close() error

	// Save stores doc under name and returns where it went (path, row key
	// or stream URL).
	Save(ctx context.Context, name string, doc *czml.Document) (string, error)
}

// Reader is an optional interface for backends that can serve stored
// documents back.
type Reader interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) ([]byte, error)
}
