package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesDatabaseFile(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "cache.db"),
		Name: "cache",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "cache", db.Name())
	assert.NotNil(t, db.Conn())
}

func TestNewInMemory(t *testing.T) {
	db, err := New(Config{
		Path: "file:dbtest?mode=memory&cache=shared",
		Name: "test",
	})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Conn().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}

func TestNewFileURIWithoutQuery(t *testing.T) {
	db, err := New(Config{
		Path: "file:" + filepath.Join(t.TempDir(), "cache.db"),
		Name: "cache",
	})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Conn().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}

func TestHealthCheck(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "cache.db"),
		Name: "cache",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck(context.Background()))
}
