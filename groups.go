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

	"github.com/strada-dev/strada/route"
)

// GroupAttrs are the attributes a group contributes: path prefix,
// middleware references, handler namespace, and a route-name fragment.
type GroupAttrs = route.Attrs

// Group is an attribute scope for registering related routes. The scope is
// an explicit immutable value carried by the Group — there is no ambient
// scope stack to push and pop, so a group body that panics cannot leak its
// scope into later registrations, and nesting is purely additive: a child
// scope can extend but never unset a parent attribute.
//
// Example:
//
//	r.Group(strada.GroupAttrs{Prefix: "/admin", Middleware: []string{"auth"}, Name: "admin."}, func(g *strada.Group) {
//	    g.GET("/stats", statsHandler).Name("stats")       // name "admin.stats"
//	    g.Group(strada.GroupAttrs{Prefix: "/users"}, func(g *strada.Group) {
//	        g.GET("/{id}", showUser)                      // template /admin/users/{id}, middleware ["auth"]
//	    })
//	})
type Group struct {
	router *Router
	scope  route.Scope
}

// Group opens an attribute scope on the router and runs body inside it.
func (r *Router) Group(attrs GroupAttrs, body func(*Group)) {
	body(&Group{router: r, scope: route.Scope{}.Merge(attrs)})
}

// Group opens a nested scope. The child's attributes merge onto the
// parent's: prefixes concatenate and re-normalize, middleware appends
// (outer first), namespaces join with a dot, and name fragments concatenate
// with no separator.
func (g *Group) Group(attrs GroupAttrs, body func(*Group)) {
	body(&Group{router: g.router, scope: g.scope.Merge(attrs)})
}

// Scope exposes the group's accumulated scope value.
func (g *Group) Scope() route.Scope {
	return g.scope
}

// GET registers a GET route under the group's scope.
func (g *Group) GET(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodGet}, path, handler)
}

// POST registers a POST route under the group's scope.
func (g *Group) POST(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodPost}, path, handler)
}

// PUT registers a PUT route under the group's scope.
func (g *Group) PUT(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodPut}, path, handler)
}

// PATCH registers a PATCH route under the group's scope.
func (g *Group) PATCH(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodPatch}, path, handler)
}

// DELETE registers a DELETE route under the group's scope.
func (g *Group) DELETE(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodDelete}, path, handler)
}

// OPTIONS registers an OPTIONS route under the group's scope.
func (g *Group) OPTIONS(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodOptions}, path, handler)
}

// HEAD registers an explicit HEAD route under the group's scope.
func (g *Group) HEAD(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, []string{http.MethodHead}, path, handler)
}

// Any registers a route for every verb in Verbs under the group's scope.
func (g *Group) Any(path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, Verbs, path, handler)
}

// Match registers a route for an explicit method list under the group's
// scope.
func (g *Group) Match(methods []string, path string, handler any) *route.Route {
	return g.router.addRoute(g.scope, methods, path, handler)
}
