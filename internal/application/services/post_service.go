package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/postkeeper/core/internal/domain/entities"
	"github.com/postkeeper/core/internal/infrastructure/logger"
	"github.com/postkeeper/core/internal/ports"
)

// PostService handles blog post operations
type PostService struct {
	postRepo ports.PostRepository
	logger   *logger.Logger
}

// NewPostService creates a new post service
func NewPostService(postRepo ports.PostRepository, logger *logger.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		logger:   logger.WithComponent("post_service"),
	}
}

var _ ports.PostService = (*PostService)(nil)

// ListPosts returns every post matching filter
func (s *PostService) ListPosts(ctx context.Context, filter ports.PostFilter) ([]*entities.Post, error) {
	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// CreatePost stores a new post built from an already validated payload
func (s *PostService) CreatePost(ctx context.Context, payload entities.Fields) (*entities.Post, error) {
	post, err := s.postRepo.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Infow("Post created successfully", "post_id", post.ID, "title", post.Title())
	return post, nil
}

// ReplacePost overwrites the post stored under id
func (s *PostService) ReplacePost(ctx context.Context, id string, payload entities.Fields) (*entities.Post, error) {
	post, err := s.postRepo.Replace(ctx, id, payload)
	if err != nil {
		if !errors.Is(err, entities.ErrPostNotFound) {
			s.logger.Errorw("Replace post failed", "post_id", id, "error", err)
		}
		return nil, fmt.Errorf("failed to replace post: %w", err)
	}

	s.logger.Infow("Post replaced successfully", "post_id", post.ID)
	return post, nil
}

// DeletePost removes the post stored under id. Deleting a missing post succeeds.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Infow("Post deleted", "post_id", id)
	return nil
}
