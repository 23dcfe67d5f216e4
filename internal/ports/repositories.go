package ports

import (
	"context"

	"github.com/postkeeper/core/internal/domain/entities"
)

// RecordStore defines the durable load/save of a whole collection.
// Implementations do no locking; callers serialize writers.
type RecordStore interface {
	LoadAll(ctx context.Context) ([]*entities.Post, error)
	SaveAll(ctx context.Context, posts []*entities.Post) error
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]*entities.Post, error)
	GetByID(ctx context.Context, id string) (*entities.Post, error)
	Create(ctx context.Context, fields entities.Fields) (*entities.Post, error)
	Replace(ctx context.Context, id string, fields entities.Fields) (*entities.Post, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PostFilter selects posts whose Field holds exactly the string Value.
// The zero value matches everything.
type PostFilter struct {
	Field string
	Value string
}

// IsEmpty reports whether the filter matches every post
func (f PostFilter) IsEmpty() bool {
	return f.Field == ""
}

// Matches reports whether post satisfies the filter
func (f PostFilter) Matches(post *entities.Post) bool {
	if f.IsEmpty() {
		return true
	}
	v, ok := post.Fields.String(f.Field)
	return ok && v == f.Value
}
