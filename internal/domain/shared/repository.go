package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the generic CRUD contract aggregate repositories embed
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter narrows and pages a FindAll query. Filters holds exact-match
// column predicates; Search does a substring match on the aggregate's
// primary text column.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
