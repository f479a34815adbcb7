package store

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// Open creates the backend selected by cfg, wrapped with [Observe].
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.File.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis, logger)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo, logger)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("opened document store", "backend", cfg.Backend)
	return Observe(s, cfg.Backend), nil
}

// observed reports store traffic to the observability hooks.
type observed struct {
	Store
	backend string
}

// Observe wraps s so loads, saves and deletes are reported to
// [observability.Store] under the given backend name.
func Observe(s Store, backend string) Store {
	return &observed{Store: s, backend: backend}
}

func (o *observed) Get(ctx context.Context, id string) (*Record, error) {
	start := time.Now()
	rec, err := o.Store.Get(ctx, id)
	observability.Store().OnLoad(ctx, o.backend, id, time.Since(start), err)
	return rec, err
}

func (o *observed) Put(ctx context.Context, rec *Record) error {
	start := time.Now()
	err := o.Store.Put(ctx, rec)
	observability.Store().OnSave(ctx, o.backend, rec.ID, len(rec.Data), time.Since(start), err)
	return err
}

func (o *observed) Delete(ctx context.Context, id string) error {
	err := o.Store.Delete(ctx, id)
	observability.Store().OnDelete(ctx, o.backend, id, err)
	return err
}
