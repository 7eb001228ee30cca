// Copyright 2026 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strada

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/strada-dev/strada/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Option defines functional options for router configuration.
type Option func(*Router)

// Router holds the route table and dispatches requests against it.
//
// The table is two-tier: a hash map for static (parameter-free) paths keyed
// by method and path, and per-method ordered lists for dynamic (templated)
// paths. Registration order within the dynamic tier is match-precedence
// order.
//
// Lifecycle: register routes single-threaded at startup, then Freeze — done
// implicitly on the first ServeHTTP call — after which the table is
// read-only and Dispatch is safe for unlimited concurrency. Registering,
// naming, or constraining routes after the freeze panics.
type Router struct {
	mu      sync.Mutex                // guards table mutation during registration
	static  map[string]*route.Route   // "METHOD:path" -> route
	dynamic map[string][]*route.Route // method -> routes in registration order
	named   map[string]*route.Route   // name -> route
	methods []string                  // methods with any registration, first-seen order
	order   []*route.Route            // every route once, registration order

	frozen     atomic.Bool
	freezeOnce sync.Once

	logger        *slog.Logger
	diagnostics   DiagnosticHandler
	observability DispatchRecorder
	invoker       Invoker

	// Override hooks for unmatched outcomes.
	hookMu   sync.RWMutex
	noRoute  NotFoundHandler
	noMethod MethodNotAllowedHandler

	// Serving configuration.
	enableH2C      bool
	serverTimeouts *serverTimeouts
	serverMu       sync.Mutex
	server         *http.Server
}

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// New creates a router. The returned router is ready for registration;
// configuration is validated immediately rather than at request time.
//
// Example:
//
//	r, err := strada.New(strada.WithLogger(logger))
//	if err != nil {
//	    log.Fatalf("router configuration: %v", err)
//	}
//	r.GET("/health", healthHandler)
func New(opts ...Option) (*Router, error) {
	r := &Router{
		static:  make(map[string]*route.Route),
		dynamic: make(map[string][]*route.Route),
		named:   make(map[string]*route.Route),
		logger:  noopLogger,
		invoker: defaultInvoker{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}
	return r, nil
}

// MustNew is New but panics on invalid configuration. Convenient when a
// configuration error should abort startup.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("strada.MustNew: %v", err))
	}
	return r
}

func (r *Router) validate() error {
	if t := r.serverTimeouts; t != nil {
		for _, d := range []time.Duration{t.readHeader, t.read, t.write, t.idle} {
			if d <= 0 {
				return fmt.Errorf("%w: got %v", ErrServerTimeoutInvalid, d)
			}
		}
	}
	return nil
}

// Freeze publishes the route table for concurrent dispatch. It compiles
// every dynamic route's matcher eagerly, so no request ever triggers lazy
// compilation, then marks the table immutable. Freeze is idempotent and
// safe to call from multiple goroutines; ServeHTTP calls it automatically
// on the first request.
func (r *Router) Freeze() {
	r.freezeOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, rt := range r.order {
			if !rt.Static() {
				rt.Compile()
			}
		}
		r.frozen.Store(true)
		r.logger.Debug("route table frozen", "routes", len(r.order))
	})
}

// IsFrozen reports whether the table has been published for concurrent
// dispatch. Part of the route.Registrar contract.
func (r *Router) IsFrozen() bool {
	return r.frozen.Load()
}

// RegisterNamedRoute indexes a route under a name for reverse URL
// generation. Part of the route.Registrar contract.
//
// Indexing the same (name, route) pair twice is a no-op. Re-pointing an
// existing name at a different route wins silently apart from a diagnostic
// event; naming one route twice with different names leaves both index
// entries in place — the index never deduplicates by route identity.
func (r *Router) RegisterNamedRoute(name string, rt *route.Route) {
	r.mu.Lock()
	prev, existed := r.named[name]
	r.named[name] = rt
	r.mu.Unlock()

	if existed && prev != rt {
		r.emit(DiagNameRepointed, "route name re-indexed to a different route", map[string]any{
			"name":     name,
			"template": rt.Template(),
		})
	}
}

// emit sends a diagnostic event if a handler is configured.
func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
