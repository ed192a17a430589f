// Package service sits between transport and repositories. It normalizes
// missing entities to domain.ErrNotFound, validates before delegating writes,
// and optionally serves reads through a cache.Store.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hospital-api/internal/core/cache"
	"hospital-api/internal/domain"
)

const keyPrefix = "hospital:"

type options struct {
	cache cache.Store
	ttl   time.Duration
	log   *zap.Logger
}

type Option func(*options)

// WithCache enables read-through caching of GetByID and GetAll. A nil store
// leaves caching off.
func WithCache(s cache.Store, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = s
		o.ttl = ttl
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// crud is the entity-agnostic core embedded by each concrete service.
type crud[T any] struct {
	kind  string
	repo  domain.Repository[T]
	check func(*T) error
	idOf  func(*T) uint
	// redact strips what must never leave the service or reach the cache.
	redact func(*T)
	options
}

func newCrud[T any](kind string, repo domain.Repository[T], check func(*T) error, idOf func(*T) uint, opts []Option) crud[T] {
	o := options{ttl: time.Minute, log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.ttl <= 0 {
		o.ttl = time.Minute
	}
	return crud[T]{kind: kind, repo: repo, check: check, idOf: idOf, redact: func(*T) {}, options: o}
}

// Every write bumps the kind's generation, and cached reads are keyed by it.
func (s *crud[T]) genKey() string { return keyPrefix + s.kind + ":gen" }

func (s *crud[T]) keyOf(gen int64, id uint) string {
	return fmt.Sprintf("%s%s:g%d:%d", keyPrefix, s.kind, gen, id)
}

func (s *crud[T]) keyAll(gen int64) string {
	return fmt.Sprintf("%s%s:g%d:all", keyPrefix, s.kind, gen)
}

func (s *crud[T]) GetAll(ctx context.Context) ([]T, error) {
	if s.cache == nil {
		return s.readAll(ctx)
	}
	gen, err := s.cache.Gen(ctx, s.genKey())
	if err != nil {
		s.log.Warn("cache generation read failed", zap.String("kind", s.kind), zap.Error(err))
		return s.readAll(ctx)
	}
	key := s.keyAll(gen)
	var loadErr error
	out, err := cache.GetOrLoadJSON(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]T, error) {
		v, e := s.readAll(ctx)
		loadErr = e
		return v, e
	})
	if err == nil {
		return out, nil
	}
	if loadErr != nil {
		return nil, loadErr
	}
	s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	return s.readAll(ctx)
}

func (s *crud[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	if s.cache == nil {
		return s.read(ctx, id)
	}
	gen, err := s.cache.Gen(ctx, s.genKey())
	if err != nil {
		s.log.Warn("cache generation read failed", zap.String("kind", s.kind), zap.Error(err))
		return s.read(ctx, id)
	}
	key := s.keyOf(gen, id)
	var loadErr error
	out, err := cache.GetOrLoadJSON(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*T, error) {
		v, e := s.read(ctx, id)
		loadErr = e
		return v, e
	})
	if err == nil && out != nil {
		return out, nil
	}
	if loadErr != nil {
		return nil, loadErr
	}
	// a shared singleflight failure or an undecodable entry: go to the store
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return s.read(ctx, id)
}

func (s *crud[T]) Create(ctx context.Context, e *T) error {
	if e == nil {
		return domain.ErrNullInput
	}
	if err := s.check(e); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}
	id := s.idOf(e)
	s.log.Debug("created", zap.String("kind", s.kind), zap.Uint("id", id))
	s.bump(ctx, id)
	return nil
}

func (s *crud[T]) Update(ctx context.Context, e *T) error {
	if e == nil {
		return domain.ErrNullInput
	}
	id := s.idOf(e)
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.check(e); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}
	s.log.Debug("updated", zap.String("kind", s.kind), zap.Uint("id", id))
	s.bump(ctx, id)
	return nil
}

func (s *crud[T]) Delete(ctx context.Context, id uint) error {
	e, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, e); err != nil {
		return err
	}
	s.log.Debug("deleted", zap.String("kind", s.kind), zap.Uint("id", id))
	s.bump(ctx, id)
	return nil
}

// load always reads the store; existence checks must not trust the cache.
func (s *crud[T]) load(ctx context.Context, id uint) (*T, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound(s.kind, id)
	}
	return e, nil
}

func (s *crud[T]) read(ctx context.Context, id uint) (*T, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.redact(e)
	return e, nil
}

func (s *crud[T]) readAll(ctx context.Context) ([]T, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []T{}
	}
	for i := range all {
		s.redact(&all[i])
	}
	return all, nil
}

func (s *crud[T]) bump(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx, s.genKey()); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("kind", s.kind), zap.Uint("id", id), zap.Error(err))
	}
}
