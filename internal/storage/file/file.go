// Package file stores CZML documents as files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OCAP2/czml/pkg/czml"
	"github.com/klauspost/compress/gzip"
)

const (
	ext     = ".czml"
	gzipExt = ".czml.gz"
)

// Config holds file backend configuration.
type Config struct {
	OutputDir      string
	CompressOutput bool
}

// Backend writes one file per document.
type Backend struct {
	cfg Config
}

// New creates a file backend.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Init ensures the output directory exists.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close is a no-op.
func (b *Backend) Close() error {
	return nil
}

// SanitizeName maps a document name to a safe file stem.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "document"
	}
	r := strings.NewReplacer(" ", "_", ":", "_", "/", "_", `\`, "_", "..", "_")
	return r.Replace(name)
}

// Save encodes doc to <OutputDir>/<name>.czml, gzip-compressed when
// configured. The file is written to a temp name and renamed into place.
func (b *Backend) Save(ctx context.Context, name string, doc *czml.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := SanitizeName(name) + ext
	if b.cfg.CompressOutput {
		filename = SanitizeName(name) + gzipExt
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	tmp, err := os.CreateTemp(b.cfg.OutputDir, filename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := b.encode(tmp, doc); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return outputPath, nil
}

func (b *Backend) encode(w io.Writer, doc *czml.Document) error {
	if !b.cfg.CompressOutput {
		return doc.Encode(w)
	}
	gw := gzip.NewWriter(w)
	if err := doc.Encode(gw); err != nil {
		gw.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

// List returns the stored document names, sorted.
func (b *Backend) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var stem string
		switch n := e.Name(); {
		case strings.HasSuffix(n, gzipExt):
			stem = strings.TrimSuffix(n, gzipExt)
		case strings.HasSuffix(n, ext):
			stem = strings.TrimSuffix(n, ext)
		default:
			continue
		}
		if !seen[stem] {
			seen[stem] = true
			names = append(names, stem)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the uncompressed document stored under name.
func (b *Backend) Load(ctx context.Context, name string) ([]byte, error) {
	stem := SanitizeName(name)

	data, err := os.ReadFile(filepath.Join(b.cfg.OutputDir, stem+ext))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	f, err := os.Open(filepath.Join(b.cfg.OutputDir, stem+gzipExt))
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", name, err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
