package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// FS is a filesystem-based Archive. Each owner gets a subdirectory of the
// base directory.
type FS struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFS creates a filesystem archive rooted at baseDir.
func NewFS(baseDir string) (*FS, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FS{baseDir: baseDir}, nil
}

func (a *FS) ownerDir(ownerID string) string {
	return filepath.Join(a.baseDir, ownerID)
}

// Save writes the snapshot under the owner's directory.
func (a *FS) Save(ctx context.Context, ownerID string, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	dir := a.ownerDir(ownerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	name := snapshotName(time.Now())
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return name, nil
}

// Load reads an archived snapshot.
func (a *FS) Load(ctx context.Context, ownerID, name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	// Reject path traversal in names coming from callers.
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid archive name: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(a.ownerDir(ownerID), name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archive %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// List returns the owner's archive names, lexically sorted.
func (a *FS) List(ctx context.Context, ownerID string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entries, err := os.ReadDir(a.ownerDir(ownerID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
