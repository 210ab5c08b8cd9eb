package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rezkam/taskmaster/internal/domain"
)

// ExportSnapshot produces the portable task records for the full collection,
// in collection order, with internal identifiers stripped.
func (c *Coordinator) ExportSnapshot() []domain.SnapshotRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]domain.SnapshotRecord, 0, len(c.tasks))
	for _, t := range c.tasks {
		records = append(records, domain.SnapshotFromTask(t))
	}
	return records
}

// ImportSnapshot inserts one task per record and merges the successes into
// the collection, prepended as a block in store-return order. The merge is
// best-effort: a failed insert is skipped, and the aggregate error carries
// the failure count while imported reports how many records made it in.
// A record's CreatedAt is preserved when present; the store assigns one
// otherwise.
func (c *Coordinator) ImportSnapshot(ctx context.Context, records []domain.SnapshotRecord) (imported int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerID == "" {
		return 0, domain.ErrNotAuthorized
	}

	var created []domain.Task
	var failures []error
	for i, record := range records {
		t, insertErr := c.repo.Insert(ctx, c.ownerID, record.Task())
		if insertErr != nil {
			failures = append(failures, fmt.Errorf("record %d: %w", i, insertErr))
			continue
		}
		created = append(created, t)
	}

	c.tasks = append(created, c.tasks...)

	if len(failures) > 0 {
		return len(created), fmt.Errorf("failed to import %d of %d records: %w",
			len(failures), len(records), errors.Join(failures...))
	}
	return len(created), nil
}

// EncodeSnapshot serializes records as the UTF-8 JSON array used at the file
// boundary.
func EncodeSnapshot(records []domain.SnapshotRecord) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot file. A payload that is not a JSON array
// of task records is rejected as a whole: no partial result is returned.
func DecodeSnapshot(data []byte) ([]domain.SnapshotRecord, error) {
	var records []domain.SnapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}
	return records, nil
}
