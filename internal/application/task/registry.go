package task

import (
	"context"
	"sync"
)

// Registry hands out one Coordinator per owner, loading the owner's tasks on
// first use. Coordinators live for the process lifetime; the collection they
// hold is the in-memory working copy of the owner's store.
type Registry struct {
	repo Repository

	mu           sync.Mutex
	coordinators map[string]*Coordinator
}

// NewRegistry creates an empty registry backed by repo.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:         repo,
		coordinators: make(map[string]*Coordinator),
	}
}

// Get returns the coordinator bound to ownerID, creating and loading it on
// first access.
func (r *Registry) Get(ctx context.Context, ownerID string) (*Coordinator, error) {
	r.mu.Lock()
	if c, ok := r.coordinators[ownerID]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	// Bind outside the registry lock: loading can hit the store.
	c := NewCoordinator(r.repo)
	if err := c.Bind(ctx, ownerID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have bound the same owner meanwhile; keep the
	// first coordinator so all requests share one collection.
	if existing, ok := r.coordinators[ownerID]; ok {
		return existing, nil
	}
	r.coordinators[ownerID] = c
	return c, nil
}
