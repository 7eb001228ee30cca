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

// DiagnosticEvent represents a registration-time anomaly or notice.
// These are informational: the router functions identically whether they
// are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered fires once per registered route.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagStaticOverwrite fires when a static registration silently
	// replaces an earlier route for the same method and path. Last
	// registration wins; this event is the only trace of the earlier one.
	DiagStaticOverwrite DiagnosticKind = "static_route_overwritten"

	// DiagNameRepointed fires when an existing route name is re-indexed to
	// point at a different route.
	DiagNameRepointed DiagnosticKind = "route_name_repointed"

	// DiagGreedyOptional fires when a route carries an unconstrained
	// optional parameter. The default optional pattern matches across
	// slashes; the event flags the inherited greediness so it is a
	// documented choice rather than a surprise.
	DiagGreedyOptional DiagnosticKind = "greedy_optional_parameter"

	// DiagH2CEnabled fires when Serve starts with h2c enabled.
	DiagH2CEnabled DiagnosticKind = "h2c_enabled"
)

// DiagnosticHandler receives diagnostic events. Implementations may log,
// count, or drop them.
//
// Example with logging:
//
//	handler := strada.DiagnosticHandlerFunc(func(e strada.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := strada.MustNew(strada.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
