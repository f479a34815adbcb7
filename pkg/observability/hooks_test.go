package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEngineHooks{}
	e.OnOperation("drop", time.Millisecond, nil)
	e.OnDropRejected(4, 2)
	e.OnNormalize(1, 1, 1)

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", "doc", time.Millisecond, nil)
	s.OnSave(ctx, "redis", "doc", 512, time.Millisecond, nil)
	s.OnDelete(ctx, "mongo", "doc", nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/documents/{id}/drop", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	SetEngineHooks(nil)
	if Engine() != customEngine {
		t.Error("SetEngineHooks(nil) should keep existing hooks")
	}

	Engine().OnOperation("select", time.Millisecond, nil)
	if customEngine.ops != 1 {
		t.Errorf("ops = %d, want 1", customEngine.ops)
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset should restore NoopEngineHooks")
	}
}

type testEngineHooks struct {
	NoopEngineHooks
	ops int
}

func (h *testEngineHooks) OnOperation(string, time.Duration, error) { h.ops++ }

type testStoreHooks struct {
	NoopStoreHooks
}
