// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about dataset loading, layout progress and interaction.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLoadHooks(&myLoadHooks{})
//	    observability.SetViewHooks(&myViewHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Load().OnLoadStart(ctx, nodesURI, edgesURI)
//	// ... fetch and parse ...
//	observability.Load().OnLoadComplete(ctx, nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from the dataset loader.
type LoadHooks interface {
	OnLoadStart(ctx context.Context, nodesURI, edgesURI string)
	// OnLoadComplete reports counts of the dataset actually shown; err is
	// non-nil when the error graph was substituted.
	OnLoadComplete(ctx context.Context, nodes, edges int, duration time.Duration, err error)
}

// =============================================================================
// View Hooks
// =============================================================================

// ViewHooks receives events from live views.
type ViewHooks interface {
	// OnStateChange records a view entering a new lifecycle state.
	OnStateChange(ctx context.Context, viewID, state string)

	// OnSettle records the simulation reaching rest after ticks steps.
	OnSettle(ctx context.Context, viewID string, ticks int, duration time.Duration)

	// OnClick records a click on a node.
	OnClick(ctx context.Context, viewID, nodeID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoadStart(context.Context, string, string)                       {}
func (NoopLoadHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {}

// NoopViewHooks is a no-op implementation of ViewHooks.
type NoopViewHooks struct{}

func (NoopViewHooks) OnStateChange(context.Context, string, string)           {}
func (NoopViewHooks) OnSettle(context.Context, string, int, time.Duration) {}
func (NoopViewHooks) OnClick(context.Context, string, string)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	loadHooks LoadHooks = NoopLoadHooks{}
	viewHooks ViewHooks = NoopViewHooks{}
	hooksMu   sync.RWMutex
)

// SetLoadHooks registers custom load hooks.
// This should be called once at application startup before any loads.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// SetViewHooks registers custom view hooks.
func SetViewHooks(h ViewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewHooks = h
	}
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// View returns the registered view hooks.
func View() ViewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loadHooks = NoopLoadHooks{}
	viewHooks = NoopViewHooks{}
}

// =============================================================================
// Counters
// =============================================================================

// Counters is a LoadHooks and ViewHooks implementation that keeps running
// totals. It is safe for concurrent use.
type Counters struct {
	mu       sync.Mutex
	loads    int
	failures int
	settles  int
	clicks   int
	states   map[string]int
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{states: map[string]int{}}
}

func (c *Counters) OnLoadStart(context.Context, string, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	if err != nil {
		c.failures++
	}
}

func (c *Counters) OnStateChange(_ context.Context, _ string, state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[state]++
}

func (c *Counters) OnSettle(context.Context, string, int, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settles++
}

func (c *Counters) OnClick(context.Context, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clicks++
}

// Stats is a point-in-time copy of Counters.
type Stats struct {
	Loads    int            `json:"loads"`
	Failures int            `json:"load_failures"`
	Settles  int            `json:"settles"`
	Clicks   int            `json:"clicks"`
	States   map[string]int `json:"states"`
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	states := make(map[string]int, len(c.states))
	for k, v := range c.states {
		states[k] = v
	}
	return Stats{Loads: c.loads, Failures: c.failures, Settles: c.settles, Clicks: c.clicks, States: states}
}
