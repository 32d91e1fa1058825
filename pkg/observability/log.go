package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger. Each record carries a "hook" key naming the event family.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

// Install registers h for expansion, cache and HTTP events.
func (h *LogHooks) Install() {
	SetExpansionHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnExpandStart(_ context.Context, id, formula string) {
	h.logger.Debug("expand start", "hook", "expansion", "id", id, "formula", formula)
}

func (h *LogHooks) OnExpandComplete(_ context.Context, id, formula string, depCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("expand failed", "hook", "expansion", "id", id, "formula", formula, "elapsed", d, "err", err)
		return
	}
	h.logger.Debug("expand done", "hook", "expansion", "id", id, "formula", formula, "deps", depCount, "elapsed", d)
}

func (h *LogHooks) OnCycle(_ context.Context, id, dependent, dep string) {
	h.logger.Debug("cycle skipped", "hook", "expansion", "id", id, "dependent", dependent, "dep", dep)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "hook", "cache", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "hook", "cache", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "hook", "cache", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "hook", "http", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "hook", "http", "method", method, "path", path, "status", status, "elapsed", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("handler error", "hook", "http", "method", method, "path", path, "err", err)
}

var (
	_ ExpansionHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ HTTPHooks      = (*LogHooks)(nil)
)
