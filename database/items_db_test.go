package database

import (
	"apiversions/models"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "data", "items.db")))
	t.Cleanup(func() { CloseDB() })
}

func TestInitDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.db")
	require.NoError(t, InitDB(path))
	require.NoError(t, CloseDB())
	require.NoError(t, InitDB(path))
	require.NoError(t, CloseDB())
}

func TestCreateAndGetItem(t *testing.T) {
	setupDB(t)

	created, err := CreateItem(models.CreateItemRequest{Name: "widget", Description: "blue"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := GetItemByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Name)
	assert.Equal(t, sql.NullString{String: "blue", Valid: true}, got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = GetItemByID("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListItemsPaginated(t *testing.T) {
	setupDB(t)

	items, total, err := ListItemsPaginated(10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)

	for _, name := range []string{"a", "b", "c"} {
		_, err := CreateItem(models.CreateItemRequest{Name: name})
		require.NoError(t, err)
	}

	items, total, err = ListItemsPaginated(2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)

	items, _, err = ListItemsPaginated(2, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, items[0].Description.Valid)
}

func TestDeleteItem(t *testing.T) {
	setupDB(t)

	created, err := CreateItem(models.CreateItemRequest{Name: "gone"})
	require.NoError(t, err)

	require.NoError(t, DeleteItem(created.ID))
	assert.ErrorIs(t, DeleteItem(created.ID), sql.ErrNoRows)
}
