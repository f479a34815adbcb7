package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/observability"
)

const doc = `{"rows":[{"columns":[{"width":16,"tiles":[{"content":"x","url":"u"}]}]}]}`

// testStore runs the behaviour shared by every backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	rec := &Record{Name: "home", Data: json.RawMessage(doc)}
	require.NoError(t, s.Put(ctx, rec))
	require.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	created := rec.CreatedAt

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "home", got.Name)
	assert.JSONEq(t, doc, string(got.Data))

	time.Sleep(5 * time.Millisecond)
	update := &Record{ID: rec.ID, Name: "home v2", Data: json.RawMessage(`{"rows":[]}`)}
	require.NoError(t, s.Put(ctx, update))
	got, err = s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "home v2", got.Name)
	assert.True(t, got.CreatedAt.Equal(created.Truncate(time.Millisecond)) || got.CreatedAt.Equal(created),
		"created_at changed: %v -> %v", created, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	other := &Record{ID: "second", Data: json.RawMessage(`{"rows":[]}`)}
	require.NoError(t, s.Put(ctx, other))
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].ID, "newest first")

	require.NoError(t, s.Delete(ctx, rec.ID))
	_, err = s.Get(ctx, rec.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errs.Is(err, errs.ErrCodeDocumentNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, rec.ID), ErrNotFound))

	assert.True(t, errs.Is(s.Put(ctx, &Record{ID: "../evil", Data: json.RawMessage(`{}`)}), errs.ErrCodeInvalidInput))
	assert.True(t, errs.Is(s.Put(ctx, &Record{ID: "bad-json", Data: json.RawMessage(`{`)}), errs.ErrCodeInvalidDocument))
	require.NoError(t, s.Delete(ctx, "second"))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := &Record{ID: "a", Data: json.RawMessage(`{"rows":[]}`)}
	require.NoError(t, s.Put(ctx, rec))
	rec.Data[0] = '['

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `{"rows":[]}`, string(got.Data))
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, err)
	testStore(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0600))
	require.NoError(t, s.Put(context.Background(), &Record{ID: "ok", Data: json.RawMessage(`{"rows":[]}`)}))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ok", list[0].ID)
	assert.Equal(t, dir, s.Path())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("MOSAIC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MOSAIC_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "mosaic-test:" + NewID() + ":"}, nil)
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MOSAIC_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MOSAIC_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "mosaic_test", Collection: "docs_" + NewID()[:8]}, nil)
	require.NoError(t, err)
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close()
	}()
	testStore(t, s)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"memory", Config{Backend: BackendMemory}, true},
		{"unknown", Config{Backend: "s3"}, false},
		{"redis without addr", Config{Backend: BackendRedis}, false},
		{"redis negative ttl", Config{Backend: BackendRedis, Redis: RedisConfig{Addr: "x:1", TTL: -time.Second}}, false},
		{"mongo partial", Config{Backend: BackendMongo, Mongo: MongoConfig{URI: "mongodb://x"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig), "got %v", err)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopStoreHooks
	loads, saves, deletes []string
}

func (h *recordingHooks) OnLoad(_ context.Context, backend, id string, _ time.Duration, _ error) {
	h.loads = append(h.loads, backend+":"+id)
}

func (h *recordingHooks) OnSave(_ context.Context, backend, id string, _ int, _ time.Duration, _ error) {
	h.saves = append(h.saves, backend+":"+id)
}

func (h *recordingHooks) OnDelete(_ context.Context, backend, id string, _ error) {
	h.deletes = append(h.deletes, backend+":"+id)
}

func TestOpenObserved(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	s, err := Open(ctx, Config{Backend: BackendFile, File: FileConfig{Dir: t.TempDir()}}, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(ctx, &Record{ID: "a", Data: json.RawMessage(`{"rows":[]}`)}))
	_, err = s.Get(ctx, "a")
	require.NoError(t, err)
	_, _ = s.Get(ctx, "missing")
	require.NoError(t, s.Delete(ctx, "a"))

	assert.Equal(t, []string{"file:a"}, hooks.saves)
	assert.Equal(t, []string{"file:a", "file:missing"}, hooks.loads)
	assert.Equal(t, []string{"file:a"}, hooks.deletes)

	_, err = Open(ctx, Config{Backend: "nope"}, nil)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.NoError(t, errs.ValidateDocumentID(a))
}
