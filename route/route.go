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

package route

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/strada-dev/strada/compiler"
)

// Route is one registered endpoint: the set of HTTP methods it answers, a
// normalized path template, an opaque handler value, and the fluent
// configuration accumulated before first use (name, middleware, parameter
// constraints).
//
// The method set and template are immutable after construction. Fluent
// configuration must happen before the route is first matched; adding a
// constraint after a match invalidates the compiled matcher so the next
// match observes it.
//
// The matcher is compiled lazily behind an atomic pointer, so concurrent
// first use is race-free. Freezing the owning router compiles every matcher
// eagerly, which removes even that synchronization from the request path.
type Route struct {
	registrar  Registrar
	methods    []string
	template   string
	handler    any
	params     []compiler.Param
	namePrefix string

	mu          sync.Mutex // guards fluent mutation and recompilation
	middleware  []string
	constraints []Constraint
	name        string

	matcher atomic.Pointer[compiler.Pattern]
}

// New builds a Route. Methods must already be normalized (see
// NormalizeMethods) and the template already scoped and normalized; the
// router's registration path is the only intended caller.
func New(registrar Registrar, methods []string, template string, handler any, scope Scope) *Route {
	rt := &Route{
		registrar:  registrar,
		methods:    methods,
		template:   template,
		handler:    handler,
		params:     compiler.ParseParams(template),
		namePrefix: scope.NamePrefix(),
	}
	if mw := scope.Middleware(); len(mw) > 0 {
		rt.middleware = slices.Clone(mw)
	}
	return rt
}

// Name assigns a name to the route and indexes it for reverse URL
// generation. The enclosing groups' name fragments are prepended with no
// separator. Naming the same route with the same resulting name twice is a
// no-op; a different name adds a second index entry pointing at the same
// route.
//
// Panics if the router is already frozen.
func (r *Route) Name(name string) *Route {
	if r.registrar.IsFrozen() {
		panic("route: cannot name routes after the router is frozen")
	}
	full := r.namePrefix + name

	r.mu.Lock()
	r.name = full
	r.mu.Unlock()

	r.registrar.RegisterNamedRoute(full, r)
	return r
}

// Middleware appends middleware references to the route. Scope middleware
// attached at registration time stays ahead of references added here.
func (r *Route) Middleware(refs ...string) *Route {
	r.mu.Lock()
	r.middleware = append(r.middleware, refs...)
	r.mu.Unlock()
	return r
}

// Where constrains a parameter to a regex fragment. Registering a
// constraint after the route has already been matched invalidates the
// compiled matcher; the next match attempt recompiles and observes the new
// constraint.
//
// Panics on an invalid pattern (see NewConstraint).
func (r *Route) Where(param, pattern string) *Route {
	if r.registrar.IsFrozen() {
		panic("route: cannot add constraints after the router is frozen")
	}
	c := NewConstraint(param, pattern)

	r.mu.Lock()
	r.constraints = append(r.constraints, c)
	r.matcher.Store(nil)
	r.mu.Unlock()
	return r
}

// WhereNumber constrains a parameter to decimal digits.
func (r *Route) WhereNumber(param string) *Route {
	return r.Where(param, PatternNumber)
}

// WhereAlpha constrains a parameter to ASCII letters.
func (r *Route) WhereAlpha(param string) *Route {
	return r.Where(param, PatternAlpha)
}

// WhereSlug constrains a parameter to lowercase kebab-case identifiers.
func (r *Route) WhereSlug(param string) *Route {
	return r.Where(param, PatternSlug)
}

// Match runs the route's matcher against a full request path, compiling it
// first if needed.
func (r *Route) Match(path string) (map[string]string, bool) {
	return r.pattern().Match(path)
}

// MatchOnly reports whether the path would match, without extracting
// parameters. The allowed-methods scan uses this.
func (r *Route) MatchOnly(path string) bool {
	return r.pattern().MatchOnly(path)
}

// Compile compiles the matcher if it is not already compiled and returns
// it. The router calls this for every dynamic route when freezing, so
// concurrent dispatch never observes an uncompiled route.
func (r *Route) Compile() *compiler.Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.matcher.Load(); p != nil {
		return p
	}
	p := compiler.MustCompile(r.template, r.constraintMap())
	r.matcher.Store(p)
	return p
}

func (r *Route) pattern() *compiler.Pattern {
	if p := r.matcher.Load(); p != nil {
		return p
	}
	return r.Compile()
}

// constraintMap flattens the ordered constraint list into a lookup map.
// Later registrations win, matching fluent-call order.
func (r *Route) constraintMap() map[string]string {
	if len(r.constraints) == 0 {
		return nil
	}
	m := make(map[string]string, len(r.constraints))
	for _, c := range r.constraints {
		m[c.Param] = c.Pattern
	}
	return m
}

// Methods returns a copy of the route's method set.
func (r *Route) Methods() []string {
	return slices.Clone(r.methods)
}

// Template returns the normalized path template.
func (r *Route) Template() string {
	return r.template
}

// Handler returns the opaque handler value, never interpreted by the
// routing core.
func (r *Route) Handler() any {
	return r.handler
}

// RouteName returns the full route name, or "" if unnamed.
func (r *Route) RouteName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// MiddlewareRefs returns the middleware reference list, outermost first.
func (r *Route) MiddlewareRefs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.middleware)
}

// Constraints returns the ordered constraint list.
func (r *Route) Constraints() []Constraint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.constraints)
}

// Params returns the template's placeholders in left-to-right order.
func (r *Route) Params() []compiler.Param {
	return r.params
}

// Static reports whether the template contains no placeholders, making the
// route eligible for exact-key lookup on every method it serves.
func (r *Route) Static() bool {
	return compiler.IsStatic(r.template)
}

// HandlerLabel renders a human-readable description of the handler for
// diagnostic route listings: string references verbatim, functions by
// symbol name, everything else by type.
func (r *Route) HandlerLabel() string {
	switch h := r.handler.(type) {
	case nil:
		return "<nil>"
	case string:
		return h
	}
	v := reflect.ValueOf(r.handler)
	if v.Kind() == reflect.Func {
		if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
			return fn.Name()
		}
	}
	return fmt.Sprintf("%T", r.handler)
}

// Info snapshots the route for introspection.
func (r *Route) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	var constraints map[string]string
	if len(r.constraints) > 0 {
		constraints = make(map[string]string, len(r.constraints))
		for _, c := range r.constraints {
			constraints[c.Param] = c.Pattern
		}
	}
	return Info{
		Methods:      slices.Clone(r.methods),
		Template:     r.template,
		Name:         r.name,
		HandlerLabel: r.HandlerLabel(),
		Middleware:   slices.Clone(r.middleware),
		Constraints:  constraints,
		Static:       compiler.IsStatic(r.template),
		ParamCount:   len(r.params),
	}
}

// Info describes a registered route for diagnostic listings.
type Info struct {
	Methods      []string          // Normalized method set
	Template     string            // Normalized path template
	Name         string            // Route name ("" if unnamed)
	HandlerLabel string            // Human-readable handler description
	Middleware   []string          // Middleware references, outermost first
	Constraints  map[string]string // Parameter constraints (param -> pattern)
	Static       bool              // Eligible for exact-key lookup
	ParamCount   int               // Number of template placeholders
}

// NormalizeMethods uppercases and deduplicates an HTTP method list,
// preserving first-seen order. Blank entries are dropped.
func NormalizeMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}
