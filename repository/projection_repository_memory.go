package repository

import (
	"context"
	"sync"
	"time"

	"pandaledger/domain"
)

// ProjectionRepositoryMemory is an in-memory implementation of ProjectionRepository.
type ProjectionRepositoryMemory struct {
	mu     sync.Mutex
	data   []domain.Projection
	nextID int64
}

// NewProjectionRepositoryMemory creates a new in-memory projection repository.
func NewProjectionRepositoryMemory() *ProjectionRepositoryMemory {
	return &ProjectionRepositoryMemory{
		data: []domain.Projection{},
	}
}

// Save stores the projection in memory.
func (r *ProjectionRepositoryMemory) Save(_ context.Context, p domain.Projection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.data = append(r.data, p)
	return nil
}

func (r *ProjectionRepositoryMemory) List(
	_ context.Context,
	kind domain.ProjectionKind,
	limit int,
) ([]domain.Projection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.Projection{}
	for i := len(r.data) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if kind != "" && r.data[i].Kind != kind {
			continue
		}
		out = append(out, r.data[i])
	}
	return out, nil
}
