package gormstore

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/OCAP2/czml/pkg/czml"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *Backend {
	t.Helper()
	b := New(Config{Dialect: DialectSQLite, SQLitePath: filepath.Join(t.TempDir(), "czml.db")}, zerolog.Nop())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func document(name string, extra ...czml.Packet) *czml.Document {
	doc := czml.New()
	doc.Push(czml.NewDocumentPacket(name, nil))
	for _, p := range extra {
		doc.Push(p)
	}
	return doc
}

func TestSaveAndLoad(t *testing.T) {
	b := newSQLite(t)
	ctx := context.Background()

	key, err := b.Save(ctx, "Op Thunder", document("Op Thunder"))
	require.NoError(t, err)
	assert.Equal(t, "czml_documents/Op Thunder", key)

	data, err := b.Load(ctx, "Op Thunder")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"document","name":"Op Thunder","version":"1.0"}]`, string(data))
}

func TestSave_UpsertsByName(t *testing.T) {
	b := newSQLite(t)
	ctx := context.Background()

	_, err := b.Save(ctx, "op", document("v1"))
	require.NoError(t, err)
	_, err = b.Save(ctx, "op", document("v2", czml.Packet{ID: "entity-1"}))
	require.NoError(t, err)

	var rows []Document
	require.NoError(t, b.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].PacketCount)

	data, err := b.Load(ctx, "op")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"document","name":"v2","version":"1.0"},{"id":"entity-1"}]`, string(data))
}

func TestList(t *testing.T) {
	b := newSQLite(t)
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := b.Save(ctx, name, document(name))
		require.NoError(t, err)
	}

	names, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names)
}

func TestLoad_NotFound(t *testing.T) {
	b := newSQLite(t)
	_, err := b.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSave_MarshalError(t *testing.T) {
	b := newSQLite(t)
	doc := document("bad", czml.Packet{ID: "x", Description: &czml.StringValue{}})

	_, err := b.Save(context.Background(), "bad", doc)
	assert.ErrorIs(t, err, czml.ErrMarshal)

	names, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSave_NotInitialized(t *testing.T) {
	b := New(Config{Dialect: DialectSQLite}, zerolog.Nop())
	_, err := b.Save(context.Background(), "x", document("x"))
	assert.Error(t, err)
	assert.NoError(t, b.Close())
}

func TestInit_UnknownDialect(t *testing.T) {
	b := New(Config{Dialect: "mysql"}, zerolog.Nop())
	assert.Error(t, b.Init())
}

func TestInit_InjectedDB(t *testing.T) {
	first := newSQLite(t)

	b := New(Config{DB: first.db}, zerolog.Nop())
	require.NoError(t, b.Init())

	_, err := b.Save(context.Background(), "shared", document("shared"))
	require.NoError(t, err)

	names, err := first.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, names)
}
