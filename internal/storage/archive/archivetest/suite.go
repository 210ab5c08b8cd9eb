// Package archivetest provides a shared compliance suite for Archive
// implementations. Every backend must pass the same behavioral contract.
package archivetest

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmaster/internal/domain"
	"github.com/rezkam/taskmaster/internal/storage/archive"
)

// RunComplianceSuite runs a standard set of tests against an Archive
// implementation. setup returns a fresh archive for each subtest and a
// teardown function to release its resources.
func RunComplianceSuite(t *testing.T, setup func() (archive.Archive, func())) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		ar, teardown := setup()
		defer teardown()
		ctx := context.Background()

		payload := []byte(`[{"text":"write report","startTime":"2024-04-10T09:00:00Z"}]`)
		name, err := ar.Save(ctx, "owner-1", payload)
		require.NoError(t, err)
		require.NotEmpty(t, name)

		loaded, err := ar.Load(ctx, "owner-1", name)
		require.NoError(t, err)
		assert.Equal(t, payload, loaded)
	})

	t.Run("ListSorted", func(t *testing.T) {
		ar, teardown := setup()
		defer teardown()
		ctx := context.Background()

		_, err := ar.Save(ctx, "owner-1", []byte("[]"))
		require.NoError(t, err)
		_, err = ar.Save(ctx, "owner-1", []byte("[]"))
		require.NoError(t, err)

		names, err := ar.List(ctx, "owner-1")
		require.NoError(t, err)
		assert.True(t, sort.StringsAreSorted(names))
	})

	t.Run("OwnerIsolation", func(t *testing.T) {
		ar, teardown := setup()
		defer teardown()
		ctx := context.Background()

		name, err := ar.Save(ctx, "owner-1", []byte("[]"))
		require.NoError(t, err)

		names, err := ar.List(ctx, "owner-2")
		require.NoError(t, err)
		assert.Empty(t, names, "an owner never sees another owner's archives")

		_, err = ar.Load(ctx, "owner-2", name)
		assert.Error(t, err)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		ar, teardown := setup()
		defer teardown()

		_, err := ar.Load(context.Background(), "owner-1", "taskmaster-export-2024-01-01-000000.json")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		ar, teardown := setup()
		defer teardown()

		names, err := ar.List(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
