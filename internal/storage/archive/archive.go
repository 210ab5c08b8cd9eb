// Package archive stores copies of exported task snapshots. The default
// backend is a local directory; a GCS bucket can be configured instead for
// users who want an off-device copy.
package archive

import (
	"context"
	"fmt"
	"time"
)

// Archive persists exported snapshot files per owner.
type Archive interface {
	// Save stores a snapshot and returns the generated archive name.
	Save(ctx context.Context, ownerID string, data []byte) (string, error)

	// Load retrieves an archived snapshot by name.
	Load(ctx context.Context, ownerID, name string) ([]byte, error)

	// List returns the archive names for an owner, lexically sorted.
	List(ctx context.Context, ownerID string) ([]string, error)
}

// snapshotName builds the archive file name for an export taken at t.
// Example: taskmaster-export-2024-04-10-090500.json
func snapshotName(t time.Time) string {
	return fmt.Sprintf("taskmaster-export-%s.json", t.UTC().Format("2006-01-02-150405"))
}
