package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/rezkam/taskmaster/internal/domain"
)

// GCS is a Google Cloud Storage-backed Archive. Objects are keyed as
// {owner_id}/{snapshot name} under the configured bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a GCS archive. The client is expected to be authenticated
// via the environment (e.g. GOOGLE_APPLICATION_CREDENTIALS).
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (a *GCS) objectName(ownerID, name string) string {
	return fmt.Sprintf("%s/%s", ownerID, name)
}

// Save uploads the snapshot to the bucket.
func (a *GCS) Save(ctx context.Context, ownerID string, data []byte) (string, error) {
	name := snapshotName(time.Now())
	w := a.client.Bucket(a.bucket).Object(a.objectName(ownerID, name)).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write snapshot object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize snapshot object: %w", err)
	}
	return name, nil
}

// Load downloads an archived snapshot.
func (a *GCS) Load(ctx context.Context, ownerID, name string) ([]byte, error) {
	r, err := a.client.Bucket(a.bucket).Object(a.objectName(ownerID, name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("archive %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open snapshot object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}
	return data, nil
}

// List returns the owner's archive names, lexically sorted.
func (a *GCS) List(ctx context.Context, ownerID string) ([]string, error) {
	prefix := ownerID + "/"
	it := a.client.Bucket(a.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshot objects: %w", err)
		}
		names = append(names, attrs.Name[len(prefix):])
	}
	sort.Strings(names)
	return names, nil
}
