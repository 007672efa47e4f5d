package repository

import (
	"context"

	"pandaledger/domain"
)

type ProjectionRepository interface {
	Save(ctx context.Context, p domain.Projection) error
	// List returns the most recent projections of kind, newest first. An
	// empty kind matches every kind.
	List(ctx context.Context, kind domain.ProjectionKind, limit int) ([]domain.Projection, error)
}
