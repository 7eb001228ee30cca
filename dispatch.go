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
	"net/http"
	"slices"
	"strings"

	"github.com/strada-dev/strada/route"
)

// MatchKind is the outcome of a dispatch.
type MatchKind uint8

const (
	// KindMatched means a route answers this method and path.
	KindMatched MatchKind = iota

	// KindNotFound means no route matches the path under any method.
	KindNotFound

	// KindMethodNotAllowed means the path matches under at least one other
	// method; the Allowed set backs the 405 Allow header.
	KindMethodNotAllowed
)

func (k MatchKind) String() string {
	switch k {
	case KindMatched:
		return "matched"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unknown"
	}
}

// Match is a dispatch outcome. NotFound and MethodNotAllowed are expected,
// common outcomes — ordinary values, never errors.
type Match struct {
	Kind    MatchKind
	Route   *route.Route      // set when Kind == KindMatched
	Params  map[string]string // extracted values; empty (non-nil) for static hits
	Allowed []string          // sorted, deduplicated; set when Kind == KindMethodNotAllowed
}

// Pattern returns the matched route's template, or a low-cardinality
// sentinel for unmatched outcomes. Observability implementations should key
// metrics on this, never on the raw request path.
func (m Match) Pattern() string {
	switch m.Kind {
	case KindMatched:
		return m.Route.Template()
	case KindMethodNotAllowed:
		return "_method_not_allowed"
	default:
		return "_not_found"
	}
}

// Dispatch resolves a method and path against the route table.
//
// The lookup runs in a fixed order:
//  1. Static exact: method and path keyed into the static map. A hit
//     carries an empty parameter map.
//  2. HEAD fallback: a HEAD request that missed falls back to the GET entry
//     in the static tier only. Dynamic HEAD routes get no such fallback;
//     the asymmetry is inherited behavior and preserved.
//  3. Dynamic scan: the request method's dynamic list in registration
//     order. The first structural match wins — there is no specificity
//     scoring.
//  4. Allowed-elsewhere scan: every other method's static and dynamic
//     routes are probed with the same path. Any hits produce
//     MethodNotAllowed with the deduplicated method set; none produce
//     NotFound.
//
// The only path normalization applied is slash trimming: a missing leading
// slash is added and trailing slashes are dropped (except for the root
// path).
//
// Dispatch never mutates the table and, once the router is frozen, is safe
// for unlimited concurrent use.
func (r *Router) Dispatch(method, path string) Match {
	method = strings.ToUpper(method)
	path = trimRequestPath(path)

	if rt, ok := r.static[staticKey(method, path)]; ok {
		return Match{Kind: KindMatched, Route: rt, Params: map[string]string{}}
	}

	if method == http.MethodHead {
		if rt, ok := r.static[staticKey(http.MethodGet, path)]; ok {
			return Match{Kind: KindMatched, Route: rt, Params: map[string]string{}}
		}
	}

	for _, rt := range r.dynamic[method] {
		if params, ok := rt.Match(path); ok {
			return Match{Kind: KindMatched, Route: rt, Params: params}
		}
	}

	if allowed := r.allowedElsewhere(method, path); len(allowed) > 0 {
		return Match{Kind: KindMethodNotAllowed, Allowed: allowed}
	}
	return Match{Kind: KindNotFound}
}

// allowedElsewhere collects the methods under which the path would have
// matched, excluding the requested one. The result is sorted for a
// deterministic Allow header.
//
// For HEAD requests GET is also excluded: the static fallback is the only
// HEAD affordance a GET registration carries, so a dynamic GET route makes a
// HEAD request a plain miss, not a 405.
func (r *Router) allowedElsewhere(method, path string) []string {
	var allowed []string
	for _, m := range r.methods {
		if m == method {
			continue
		}
		if method == http.MethodHead && m == http.MethodGet {
			continue
		}
		if _, ok := r.static[staticKey(m, path)]; ok {
			allowed = append(allowed, m)
			continue
		}
		for _, rt := range r.dynamic[m] {
			if rt.MatchOnly(path) {
				allowed = append(allowed, m)
				break
			}
		}
	}
	slices.Sort(allowed)
	return allowed
}

// trimRequestPath applies the dispatcher's only path normalization: ensure
// a leading slash and strip trailing slashes. Internal double slashes and
// dot segments pass through untouched; deeper normalization is a
// non-goal of this engine.
func trimRequestPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		if trimmed := strings.TrimRight(p, "/"); trimmed != "" {
			p = trimmed
		} else {
			p = "/"
		}
	}
	return p
}
