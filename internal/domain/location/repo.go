package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("location not found")

type Repository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Location, int, error)
}
