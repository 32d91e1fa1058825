// Package observability exposes event hooks for dependency expansion, cache
// access and the HTTP API.
//
// Libraries emit events through the accessors ([Expansion], [Cache], [HTTP]);
// binaries install implementations once at startup. Until then every hook is
// a no-op, so pkg/dependency and pkg/cache never depend on a metrics or
// tracing backend.
//
//	observability.SetExpansionHooks(observability.NewLogHooks(logger))
//
// [LogHooks] reports every event to a charmbracelet/log logger at debug
// level; brewdeps installs it when run with --verbose.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ExpansionHooks receives events from the dependency expansion engine.
// The id identifies one top-level expansion and is shared by all its events.
type ExpansionHooks interface {
	OnExpandStart(ctx context.Context, id, formula string)
	OnExpandComplete(ctx context.Context, id, formula string, depCount int, duration time.Duration, err error)

	// OnCycle records a dependency whose name was already being expanded.
	OnCycle(ctx context.Context, id, dependent, dep string)
}

// CacheHooks receives events from cache reads and writes. keyType is the
// key's kind prefix, such as "deps" or "tree".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// NoopExpansionHooks ignores every expansion event.
type NoopExpansionHooks struct{}

func (NoopExpansionHooks) OnExpandStart(context.Context, string, string) {}
func (NoopExpansionHooks) OnExpandComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopExpansionHooks) OnCycle(context.Context, string, string, string) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one registered hook set. Reads are lock-free so hot paths such
// as cache lookups pay a single atomic load.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

func (s *slot[T]) reset() { s.v.Store(nil) }

var (
	expansionSlot = &slot[ExpansionHooks]{noop: NoopExpansionHooks{}}
	cacheSlot     = &slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot      = &slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetExpansionHooks installs h. A nil h is ignored.
func SetExpansionHooks(h ExpansionHooks) {
	if h != nil {
		expansionSlot.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Expansion returns the installed expansion hooks.
func Expansion() ExpansionHooks { return expansionSlot.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	expansionSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
