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
	"log/slog"
	"time"
)

// WithLogger sets the structured logger the router uses for lifecycle
// messages. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDiagnostics sets a handler for registration-time diagnostic events
// (static overwrites, re-pointed names, greedy optional parameters).
//
// Example:
//
//	handler := strada.DiagnosticHandlerFunc(func(e strada.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := strada.MustNew(strada.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithObservability sets the dispatch recorder used by ServeHTTP for
// metrics and tracing around each dispatch.
func WithObservability(recorder DispatchRecorder) Option {
	return func(r *Router) {
		r.observability = recorder
	}
}

// WithInvoker replaces the collaborator that resolves opaque handler values
// into executable handlers. The routing core itself never interprets
// handlers; only the serving adapter consults the invoker.
func WithInvoker(inv Invoker) Option {
	return func(r *Router) {
		if inv != nil {
			r.invoker = inv
		}
	}
}

// WithH2C enables HTTP/2 Cleartext support in Serve.
//
// Only use in development or behind a trusted load balancer; h2c carries no
// transport security of its own.
func WithH2C(enable bool) Option {
	return func(r *Router) {
		r.enableH2C = enable
	}
}

// WithServerTimeouts configures the timeouts Serve applies to its
// http.Server. All four values must be positive.
//
// Defaults (if not set): ReadHeaderTimeout 5s, ReadTimeout 15s,
// WriteTimeout 30s, IdleTimeout 60s.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.serverTimeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}
