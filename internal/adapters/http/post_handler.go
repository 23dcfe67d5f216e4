package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postkeeper/core/internal/application/services"
	"github.com/postkeeper/core/internal/infrastructure/logger"
	"github.com/postkeeper/core/internal/ports"
)

// PostHandler handles blog post requests
type PostHandler struct {
	postService ports.PostService
	logger      *logger.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService ports.PostService, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// Register mounts the post routes on g
func (h *PostHandler) Register(g *echo.Group) {
	g.GET("", h.ListPosts)
	g.POST("", h.CreatePost)
	g.GET("/:id", h.GetPost)
	g.PUT("/:id", h.ReplacePost)
	g.DELETE("/:id", h.DeletePost)
}

// ListPosts godoc
// @Summary List blog posts
// @Description List every post, optionally only those whose title equals the query value
// @Tags blogs
// @Produce json
// @Param title query string false "Exact title match"
// @Success 200 {array} entities.Post
// @Failure 500 {object} ErrorResponse
// @Router /blogs [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter := ports.PostFilter{}
	if title := c.QueryParam("title"); title != "" {
		filter = ports.PostFilter{Field: "title", Value: title}
	}

	posts, err := h.postService.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get post by ID
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} entities.Post
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a blog post
// @Description name, surname and a valid email are mandatory; any other field is stored as sent
// @Tags blogs
// @Accept json
// @Produce json
// @Success 201 {object} ports.CreatePostResponse
// @Failure 400 {object} ErrorResponse
// @Router /blogs [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	req := services.NewCreatePostRequest(payload)
	if err := c.Validate(&req); err != nil {
		h.logger.Debugw("Rejected post payload", "error", err)
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ports.CreatePostResponse{ID: post.ID})
}

// ReplacePost godoc
// @Summary Replace a blog post
// @Description Overwrites every client field of the post; the id always comes from the path
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} entities.Post
// @Failure 404 {object} ErrorResponse
// @Router /blogs/{id} [put]
func (h *PostHandler) ReplacePost(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	post, err := h.postService.ReplacePost(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a blog post
// @Tags blogs
// @Param id path string true "Post ID"
// @Success 204
// @Router /blogs/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
