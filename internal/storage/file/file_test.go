package file

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCAP2/czml/pkg/czml"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *czml.Document {
	doc := czml.New()
	doc.Push(czml.NewDocumentPacket("Op Thunder", nil))
	doc.Push(czml.Packet{ID: "entity-1", Name: czml.Ptr("Alpha")})
	return doc
}

const wantJSON = `[{"id":"document","name":"Op Thunder","version":"1.0"},{"id":"entity-1","name":"Alpha"}]`

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"Op Thunder":       "Op_Thunder",
		"12:30 op":         "12_30_op",
		"../../etc/passwd": "____etc_passwd",
		"":                 "document",
		`a\b`:              "a_b",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}

func TestSave_Plain(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	b := New(Config{OutputDir: dir})
	require.NoError(t, b.Init())
	defer b.Close()

	path, err := b.Save(context.Background(), "Op Thunder", testDocument())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Op_Thunder.czml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wantJSON, string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_Gzip(t *testing.T) {
	dir := t.TempDir()
	b := New(Config{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.Init())

	path, err := b.Save(context.Background(), "Op Thunder", testDocument())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Op_Thunder.czml.gz"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	gr, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, wantJSON, string(data))
}

func TestSave_CanceledContext(t *testing.T) {
	b := New(Config{OutputDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Save(ctx, "x", testDocument())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSave_MarshalErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	b := New(Config{OutputDir: dir})

	doc := czml.New()
	doc.Push(czml.Packet{ID: "bad", Description: &czml.StringValue{}})

	_, err := b.Save(context.Background(), "bad", doc)
	require.ErrorIs(t, err, czml.ErrMarshal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListAndLoad(t *testing.T) {
	dir := t.TempDir()
	plain := New(Config{OutputDir: dir})
	packed := New(Config{OutputDir: dir, CompressOutput: true})
	ctx := context.Background()

	_, err := plain.Save(ctx, "beta", testDocument())
	require.NoError(t, err)
	_, err = packed.Save(ctx, "alpha", testDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := plain.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	for _, name := range names {
		data, err := plain.Load(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, wantJSON, string(data), name)
	}

	_, err = plain.Load(ctx, "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestList_MissingDirectory(t *testing.T) {
	b := New(Config{OutputDir: filepath.Join(t.TempDir(), "nope")})
	_, err := b.List(context.Background())
	assert.Error(t, err)
}
