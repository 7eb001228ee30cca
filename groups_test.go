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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupPrefixAndMiddleware(t *testing.T) {
	t.Parallel()
	r := MustNew()

	r.Group(GroupAttrs{Prefix: "/admin", Middleware: []string{"auth"}}, func(g *Group) {
		g.Group(GroupAttrs{Prefix: "/users"}, func(g *Group) {
			g.GET("/{id}", noop)
		})
	})

	m := r.Dispatch("GET", "/admin/users/42")
	require.Equal(t, KindMatched, m.Kind)
	assert.Equal(t, "/admin/users/{id}", m.Route.Template())
	assert.Equal(t, []string{"auth"}, m.Route.MiddlewareRefs())
	assert.Equal(t, map[string]string{"id": "42"}, m.Params)
}

func TestGroupMiddlewareOrderOuterFirst(t *testing.T) {
	t.Parallel()
	r := MustNew()

	r.Group(GroupAttrs{Middleware: []string{"a", "b"}}, func(g *Group) {
		g.Group(GroupAttrs{Middleware: []string{"c"}}, func(g *Group) {
			rt := g.GET("/x", noop).Middleware("d")
			assert.Equal(t, []string{"a", "b", "c", "d"}, rt.MiddlewareRefs())
		})
	})
}

func TestGroupNameFragments(t *testing.T) {
	t.Parallel()
	r := MustNew()

	// Fragments concatenate with no separator, so the trailing dot is the
	// caller's to supply.
	r.Group(GroupAttrs{Name: "admin."}, func(g *Group) {
		g.Group(GroupAttrs{Name: "users."}, func(g *Group) {
			g.GET("/admin/users", noop).Name("index")
		})
	})
	assert.Equal(t, "/admin/users", r.MustURLFor("admin.users.index", nil))

	r.Group(GroupAttrs{Name: "api"}, func(g *Group) {
		g.GET("/api/health", noop).Name("health")
	})
	assert.Equal(t, "/api/health", r.MustURLFor("apihealth", nil))
}

func TestGroupNamespaceQualifiesStringHandlers(t *testing.T) {
	t.Parallel()
	r := MustNew()

	r.Group(GroupAttrs{Namespace: "Admin"}, func(g *Group) {
		g.Group(GroupAttrs{Namespace: "Users"}, func(g *Group) {
			g.GET("/a", "UserController@show")
			g.GET("/b", "plain-string")
			g.GET("/c", noop)
		})
	})

	// Only "@"-style references pick up the namespace.
	assert.Equal(t, "Admin.Users.UserController@show", r.Dispatch("GET", "/a").Route.Handler())
	assert.Equal(t, "plain-string", r.Dispatch("GET", "/b").Route.Handler())
	assert.NotNil(t, r.Dispatch("GET", "/c").Route.Handler())
}

func TestGroupPrefixNormalization(t *testing.T) {
	t.Parallel()
	r := MustNew()

	r.Group(GroupAttrs{Prefix: "admin/"}, func(g *Group) {
		g.GET("stats", noop)
		g.GET("/", noop)
	})

	assert.Equal(t, KindMatched, r.Dispatch("GET", "/admin/stats").Kind)
	// A "/" path under a prefix registers the prefix itself.
	assert.Equal(t, KindMatched, r.Dispatch("GET", "/admin").Kind)
}

func TestGroupScopeDoesNotLeak(t *testing.T) {
	t.Parallel()
	r := MustNew()

	func() {
		defer func() { _ = recover() }()
		r.Group(GroupAttrs{Prefix: "/broken", Middleware: []string{"auth"}}, func(g *Group) {
			panic("body failed")
		})
	}()

	// The scope lived only inside the group body; later registrations start
	// clean.
	rt := r.GET("/after", noop)
	assert.Equal(t, "/after", rt.Template())
	assert.Empty(t, rt.MiddlewareRefs())
}

func TestGroupScopeValue(t *testing.T) {
	t.Parallel()
	r := MustNew()

	r.Group(GroupAttrs{Prefix: "/v1", Namespace: "API", Name: "v1."}, func(g *Group) {
		s := g.Scope()
		assert.Equal(t, "/v1", s.Prefix())
		assert.Equal(t, "API", s.Namespace())
		assert.Equal(t, "v1.", s.NamePrefix())
	})
}
