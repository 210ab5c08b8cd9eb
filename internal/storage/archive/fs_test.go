package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmaster/internal/domain"
)

func TestFSArchive_SaveLoadList(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	name, err := fs.Save(ctx, "owner-1", []byte(`[{"text":"a"}]`))
	require.NoError(t, err)
	assert.Contains(t, name, "taskmaster-export-")
	assert.Contains(t, name, ".json")

	data, err := fs.Load(ctx, "owner-1", name)
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"a"}]`, string(data))

	names, err := fs.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)
}

func TestFSArchive_OwnersAreIsolated(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = fs.Save(ctx, "owner-1", []byte("[]"))
	require.NoError(t, err)

	names, err := fs.List(ctx, "owner-2")
	require.NoError(t, err)
	assert.Empty(t, names, "an owner never sees another owner's archives")
}

func TestFSArchive_LoadRejectsTraversal(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Load(context.Background(), "owner-1", "../owner-2/secret.json")
	assert.Error(t, err)
}

func TestFSArchive_LoadMissing(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Load(context.Background(), "owner-1", "nope.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
