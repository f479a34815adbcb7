package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// logHooks reports engine, store, cache and HTTP events to the CLI logger
// at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.EngineHooks = (*logHooks)(nil)
	_ observability.StoreHooks  = (*logHooks)(nil)
	_ observability.CacheHooks  = (*logHooks)(nil)
	_ observability.HTTPHooks   = (*logHooks)(nil)
)

func (h *logHooks) OnOperation(op string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("engine operation failed", "op", op, "duration", d, "err", err)
		return
	}
	h.logger.Debug("engine operation", "op", op, "duration", d)
}

func (h *logHooks) OnDropRejected(targetColumns, sourceTiles int) {
	h.logger.Debug("drop rejected", "columns", targetColumns, "source_tiles", sourceTiles)
}

func (h *logHooks) OnNormalize(prunedColumns, prunedRows, rebalancedRows int) {
	h.logger.Debug("normalized", "pruned_columns", prunedColumns, "pruned_rows", prunedRows, "rebalanced", rebalancedRows)
}

func (h *logHooks) OnLoad(_ context.Context, backend, id string, d time.Duration, err error) {
	h.logger.Debug("store load", "backend", backend, "id", id, "duration", d, "err", err)
}

func (h *logHooks) OnSave(_ context.Context, backend, id string, size int, d time.Duration, err error) {
	h.logger.Debug("store save", "backend", backend, "id", id, "bytes", size, "duration", d, "err", err)
}

func (h *logHooks) OnDelete(_ context.Context, backend, id string, err error) {
	h.logger.Debug("store delete", "backend", backend, "id", id, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "route", route, "status", status, "duration", d.Round(time.Microsecond))
}
