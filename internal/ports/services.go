package ports

import (
	"context"

	"github.com/postkeeper/core/internal/domain/entities"
)

// PostService interface for blog post operations
type PostService interface {
	ListPosts(ctx context.Context, filter PostFilter) ([]*entities.Post, error)
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	CreatePost(ctx context.Context, payload entities.Fields) (*entities.Post, error)
	ReplacePost(ctx context.Context, id string, payload entities.Fields) (*entities.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// CreatePostResponse is returned by a successful create
type CreatePostResponse struct {
	ID string `json:"id"`
}
