// Package lectures is the data layer between the UI and the remote
// lecture service. It caches query results per user, guards mutations
// behind authentication, and keeps cached entries coherent through
// invalidation: a successful mutation invalidates the actor's list,
// and a list invalidation refreshes any open detail entries.
package lectures

import (
	"context"
	"errors"
	"time"

	"lectern/internal/domain"
	"lectern/internal/ports"
	"lectern/internal/query"
)

// PollInterval is how often a watched lecture is re-fetched while its
// transcription is still processing. Fixed cadence, no backoff.
const PollInterval = 2 * time.Second

type Store struct {
	cache   *query.Client
	svc     ports.LectureService
	metrics ports.MetricsExporter
	poll    time.Duration
	unsub   func()
}

type Option func(*Store)

// WithMetrics reports data-layer operations to m.
func WithMetrics(m ports.MetricsExporter) Option {
	return func(s *Store) { s.metrics = m }
}

// WithPollInterval overrides the watch cadence. Tests use this; the
// application keeps the default.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) { s.poll = d }
}

func NewStore(cache *query.Client, svc ports.LectureService, opts ...Option) *Store {
	s := &Store{
		cache:   cache,
		svc:     svc,
		metrics: noopMetrics{},
		poll:    PollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Cross-query rule: invalidating a user's list invalidates that
	// user's cached details too, so a stale detail never outlives the
	// list refresh that made it stale.
	s.unsub = cache.Subscribe(func(k query.Key) {
		if k.Scope == query.ScopeList {
			cache.InvalidateUser(query.ScopeDetail, k.UserID)
		}
	})
	return s
}

// Close removes the store's cache subscription.
func (s *Store) Close() {
	s.unsub()
}

// List returns the current user's lectures. Without a user it returns
// an empty result and never calls the service.
func (s *Store) List(ctx context.Context) ([]*domain.Lecture, error) {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return nil, nil
	}
	out, err := query.Fetch(ctx, s.cache, query.ListKey(user.ID), func(ctx context.Context) ([]*domain.Lecture, error) {
		return s.svc.GetUserLectures(ctx, user.ID)
	})
	s.metrics.LectureOperation(ctx, "list", err != nil)
	return out, err
}

// Get returns one of the current user's lectures by id.
func (s *Store) Get(ctx context.Context, lectureID string) (*domain.Lecture, error) {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	lec, err := query.Fetch(ctx, s.cache, query.DetailKey(user.ID, lectureID), func(ctx context.Context) (*domain.Lecture, error) {
		l, err := s.svc.GetLecture(ctx, user.ID, lectureID)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, domain.ErrNotFound
		}
		return l, nil
	})
	s.metrics.LectureOperation(ctx, "get", err != nil)
	return lec, err
}

// Create stores a new lecture for the current user and returns its id.
func (s *Store) Create(ctx context.Context, draft domain.LectureDraft) (string, error) {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	id, err := s.svc.CreateLecture(ctx, user.ID, draft)
	s.metrics.LectureOperation(ctx, "create", err != nil)
	if err != nil {
		return "", err
	}
	s.cache.Invalidate(query.ListKey(user.ID))
	return id, nil
}

// Update applies a partial update to one of the current user's lectures.
func (s *Store) Update(ctx context.Context, lectureID string, update domain.LectureUpdate) error {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	err := s.svc.UpdateLecture(ctx, user.ID, lectureID, update)
	s.metrics.LectureOperation(ctx, "update", err != nil)
	if err != nil {
		return err
	}
	s.cache.Invalidate(query.ListKey(user.ID))
	return nil
}

// Delete removes one of the current user's lectures.
func (s *Store) Delete(ctx context.Context, lectureID string) error {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	err := s.svc.DeleteLecture(ctx, user.ID, lectureID)
	s.metrics.LectureOperation(ctx, "delete", err != nil)
	if err != nil {
		return err
	}
	s.cache.Drop(query.DetailKey(user.ID, lectureID))
	s.cache.Invalidate(query.ListKey(user.ID))
	return nil
}

// Watch fetches the lecture and, while its status is processing,
// re-fetches it on every poll tick, delivering each observation on the
// returned channel. The channel closes once the status leaves
// processing, the lecture disappears, or ctx is cancelled.
func (s *Store) Watch(ctx context.Context, lectureID string) (<-chan *domain.Lecture, error) {
	user, ok := domain.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	first, err := s.Get(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	ch := make(chan *domain.Lecture, 1)
	go func() {
		defer close(ch)

		select {
		case ch <- first:
		case <-ctx.Done():
			return
		}
		if first.Status != domain.StatusProcessing {
			return
		}

		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cache.Invalidate(query.DetailKey(user.ID, lectureID))
				cur, err := s.Get(ctx, lectureID)
				if errors.Is(err, domain.ErrNotFound) {
					return
				}
				if err != nil {
					// Transient fetch failure: status is still
					// processing as far as we know, keep polling.
					continue
				}
				select {
				case ch <- cur:
				case <-ctx.Done():
					return
				}
				if cur.Status != domain.StatusProcessing {
					return
				}
			}
		}
	}()
	return ch, nil
}

type noopMetrics struct{}

func (noopMetrics) LectureOperation(context.Context, string, bool) {}
func (noopMetrics) CacheHit(context.Context, string)              {}
func (noopMetrics) CacheMiss(context.Context, string)             {}
func (noopMetrics) CacheInvalidation(context.Context, string)     {}
func (noopMetrics) Close(context.Context) error                   { return nil }
