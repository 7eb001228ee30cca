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

// Verbs is the method list Any registers. HEAD appears here because Any is
// an explicit registration of every verb; nothing else ever registers HEAD
// implicitly — a lone GET registration only answers HEAD through the static
// dispatch fallback.
var Verbs = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// GET registers a route answering GET requests.
//
// Example:
//
//	r.GET("/users/{id}", showUser).WhereNumber("id").Name("users.show")
func (r *Router) GET(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodGet}, path, handler)
}

// POST registers a route answering POST requests.
func (r *Router) POST(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodPost}, path, handler)
}

// PUT registers a route answering PUT requests.
func (r *Router) PUT(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodPut}, path, handler)
}

// PATCH registers a route answering PATCH requests.
func (r *Router) PATCH(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodPatch}, path, handler)
}

// DELETE registers a route answering DELETE requests.
func (r *Router) DELETE(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodDelete}, path, handler)
}

// OPTIONS registers a route answering OPTIONS requests.
func (r *Router) OPTIONS(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodOptions}, path, handler)
}

// HEAD registers a route answering HEAD requests explicitly. HEAD is never
// derived from a GET registration at registration time; see Dispatch for
// the static-tier fallback.
func (r *Router) HEAD(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, []string{http.MethodHead}, path, handler)
}

// Any registers a route answering every verb in Verbs.
func (r *Router) Any(path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, Verbs, path, handler)
}

// Match registers a route answering an explicit method list. Methods are
// uppercased and deduplicated.
func (r *Router) Match(methods []string, path string, handler any) *route.Route {
	return r.addRoute(route.Scope{}, methods, path, handler)
}

// addRoute builds a Route under the given scope and files it into the
// table. A route with zero placeholders is static for all its methods and
// goes into the exact-key map, where a collision silently overwrites (last
// registration wins, with a diagnostic). Templated routes append to every
// relevant method's dynamic list, preserving registration order as match
// precedence.
func (r *Router) addRoute(scope route.Scope, methods []string, path string, handler any) *route.Route {
	if r.frozen.Load() {
		panic("strada: cannot register routes after the router is frozen; register all routes before serving")
	}

	methods = route.NormalizeMethods(methods)
	if len(methods) == 0 {
		panic("strada: route registration requires at least one HTTP method")
	}

	template := route.JoinPaths(scope.Prefix(), path)
	handler = qualifyHandler(scope.Namespace(), handler)
	rt := route.New(r, methods, template, handler, scope)

	r.mu.Lock()
	if rt.Static() {
		for _, m := range methods {
			key := staticKey(m, template)
			if _, exists := r.static[key]; exists {
				r.emit(DiagStaticOverwrite, "static route overwritten by later registration", map[string]any{
					"method": m,
					"path":   template,
				})
			}
			r.static[key] = rt
			r.noteMethod(m)
		}
	} else {
		for _, m := range methods {
			r.dynamic[m] = append(r.dynamic[m], rt)
			r.noteMethod(m)
		}
	}
	r.order = append(r.order, rt)
	r.mu.Unlock()

	r.emit(DiagRouteRegistered, "route registered", map[string]any{
		"methods": methods,
		"path":    template,
		"static":  rt.Static(),
	})
	for _, p := range rt.Params() {
		if p.Optional {
			r.emit(DiagGreedyOptional, "unconstrained optional parameter matches across slashes", map[string]any{
				"param":    p.Name,
				"template": template,
			})
			break
		}
	}
	return rt
}

// noteMethod records first use of a method. Callers hold r.mu.
func (r *Router) noteMethod(m string) {
	if !slices.Contains(r.methods, m) {
		r.methods = append(r.methods, m)
	}
}

// staticKey builds the exact-lookup key for the static tier.
func staticKey(method, path string) string {
	return method + ":" + path
}

// qualifyHandler prepends a scope namespace to string handler references
// that look class-style — ones carrying the "@" method separator. Plain
// strings meant as other handler kinds pass through unchanged, as does any
// non-string handler.
func qualifyHandler(namespace string, handler any) any {
	if namespace == "" {
		return handler
	}
	ref, ok := handler.(string)
	if !ok || !strings.Contains(ref, "@") {
		return handler
	}
	return namespace + "." + ref
}

// HasRoute reports whether an exact method and path combination is
// registered, matching dynamic templates structurally. Useful for collision
// detection during registration.
func (r *Router) HasRoute(method, path string) bool {
	return r.Dispatch(method, path).Kind == KindMatched
}

// Routes lists every registered route for diagnostic listings, sorted by
// template and then by method set for stable output.
func (r *Router) Routes() []route.Info {
	r.mu.Lock()
	order := slices.Clone(r.order)
	r.mu.Unlock()

	infos := make([]route.Info, 0, len(order))
	for _, rt := range order {
		infos = append(infos, rt.Info())
	}
	slices.SortStableFunc(infos, func(a, b route.Info) int {
		if c := strings.Compare(a.Template, b.Template); c != 0 {
			return c
		}
		return strings.Compare(strings.Join(a.Methods, ","), strings.Join(b.Methods, ","))
	})
	return infos
}
