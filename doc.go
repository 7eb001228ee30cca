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

// Package strada is the request-routing engine of a minimal web-serving
// toolkit. It maps an incoming (HTTP method, path) pair to a registered
// handler, supporting static and parameterized path templates, nested
// attribute groups, reverse URL generation from route names, and precise
// Not-Found versus Method-Not-Allowed outcomes.
//
// # Registration
//
// Routes are registered per method, with {name} and {name?} placeholders:
//
//	r := strada.MustNew()
//	r.GET("/users", listUsers).Name("users.index")
//	r.GET("/users/{id}", showUser).WhereNumber("id").Name("users.show")
//
// Groups compose prefix, middleware, namespace, and name-fragment
// attributes. Scopes are explicit values passed to the group body, so a
// panicking body can never leak scope into later registrations:
//
//	r.Group(strada.GroupAttrs{Prefix: "/admin", Middleware: []string{"auth"}}, func(g *strada.Group) {
//	    g.GET("/stats", statsHandler)
//	})
//
// # Dispatch
//
// Dispatch resolves a method and path to one of three outcomes: Matched
// (with the extracted parameter map), NotFound, or MethodNotAllowed (with
// the deduplicated allowed-method set for the Allow header). Matching is a
// two-tier lookup: an exact-key table for static paths, then a
// registration-ordered scan of the method's dynamic routes. First
// structural match wins; there is no specificity scoring.
//
// Registration is expected to run single-threaded at startup. Freeze — run
// implicitly on the first ServeHTTP call — compiles every matcher and
// publishes the table as read-only, after which dispatch is safe for any
// number of concurrent request-handling goroutines.
//
// # Handlers
//
// Handler values are opaque to the routing core: it stores them and hands
// them back on a match. The ServeHTTP adapter delegates invocation to an
// Invoker collaborator; the default one understands http.Handler and
// function forms, and anything else fails loudly with
// ErrInvalidHandlerReference.
package strada
