package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/postkeeper/core/internal/domain/entities"
	"github.com/postkeeper/core/internal/ports"
)

// PostRepositoryImpl implements ports.PostRepository on top of a RecordStore.
//
// Every mutation runs load -> mutate -> save while holding mu, so concurrent
// writers are applied one after another and none is lost. Reads skip mu and
// see the last committed file.
type PostRepositoryImpl struct {
	store ports.RecordStore
	mu    sync.Mutex

	strictReplace bool
	now           func() time.Time
	newID         func() string
	metrics       *Metrics
}

// Option configures a PostRepositoryImpl
type Option func(*PostRepositoryImpl)

// WithStrictReplace makes Replace fail with NotFoundError for unknown ids
// instead of inserting.
func WithStrictReplace(strict bool) Option {
	return func(r *PostRepositoryImpl) { r.strictReplace = strict }
}

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *PostRepositoryImpl) { r.now = now }
}

// WithIDGenerator overrides id generation
func WithIDGenerator(newID func() string) Option {
	return func(r *PostRepositoryImpl) { r.newID = newID }
}

// WithMetrics records gate wait time and operation outcomes
func WithMetrics(m *Metrics) Option {
	return func(r *PostRepositoryImpl) { r.metrics = m }
}

// NewPostRepository creates a new post repository
func NewPostRepository(store ports.RecordStore, opts ...Option) *PostRepositoryImpl {
	r := &PostRepositoryImpl{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.PostRepository = (*PostRepositoryImpl)(nil)

func (r *PostRepositoryImpl) List(ctx context.Context, filter ports.PostFilter) (posts []*entities.Post, err error) {
	defer func() { r.metrics.observe("list", err) }()

	all, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Post, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, id string) (post *entities.Post, err error) {
	defer func() { r.metrics.observe("get", err) }()

	all, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(all, id); i >= 0 {
		return all[i], nil
	}
	return nil, &entities.NotFoundError{ID: id}
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	all, err := r.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, fields entities.Fields) (post *entities.Post, err error) {
	defer func() { r.metrics.observe("create", err) }()

	err = r.mutate(ctx, func(all []*entities.Post) ([]*entities.Post, error) {
		id := r.newID()
		for indexOf(all, id) >= 0 {
			id = r.newID()
		}
		post = entities.NewPost(id, r.now(), fields)
		return append(all, post), nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepositoryImpl) Replace(ctx context.Context, id string, fields entities.Fields) (post *entities.Post, err error) {
	defer func() { r.metrics.observe("replace", err) }()

	err = r.mutate(ctx, func(all []*entities.Post) ([]*entities.Post, error) {
		createdAt := time.Time{}
		if i := indexOf(all, id); i >= 0 {
			createdAt = all[i].CreatedAt
		} else if r.strictReplace {
			return nil, &entities.NotFoundError{ID: id}
		}
		if createdAt.IsZero() {
			createdAt = r.now()
		}

		post = entities.NewPost(id, createdAt, fields)
		return append(without(all, id), post), nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id string) (err error) {
	defer func() { r.metrics.observe("delete", err) }()

	return r.mutate(ctx, func(all []*entities.Post) ([]*entities.Post, error) {
		return without(all, id), nil
	})
}

// mutate runs one read-modify-write cycle under the write gate. Cancellation
// is honoured until the snapshot is loaded; the save itself always completes.
func (r *PostRepositoryImpl) mutate(ctx context.Context, apply func([]*entities.Post) ([]*entities.Post, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics.observeWait(time.Since(start))

	if err := ctx.Err(); err != nil {
		return err
	}

	all, err := r.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	next, err := apply(all)
	if err != nil {
		return err
	}

	if err := r.store.SaveAll(context.WithoutCancel(ctx), next); err != nil {
		return fmt.Errorf("persist posts: %w", err)
	}
	return nil
}

func indexOf(posts []*entities.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func without(posts []*entities.Post, id string) []*entities.Post {
	out := make([]*entities.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
