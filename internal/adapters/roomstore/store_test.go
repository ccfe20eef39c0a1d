package roomstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "rooms.json"))

	rooms, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, rooms)
}

func TestSaveAndLoad(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "rooms.json"))

	want := []string{"go@conference.example.org", "ops@conference.example.org"}
	require.NoError(t, store.Save(want))

	rooms, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, rooms)
}

func TestSaveOverwrites(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "rooms.json"))

	require.NoError(t, store.Save([]string{"go@conference.example.org"}))
	require.NoError(t, store.Save([]string{"ops@conference.example.org"}))

	rooms, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@conference.example.org"}, rooms)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := New(path).Load()
	require.Error(t, err)
}
