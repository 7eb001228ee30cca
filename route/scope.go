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

import "strings"

// Attrs are the attributes a group contributes to the routes registered
// inside it. All fields are optional; zero-value fields contribute nothing.
type Attrs struct {
	// Prefix is prepended to every route path registered in the group.
	Prefix string

	// Middleware references run ahead of route-specific middleware.
	// Order is outer-to-inner: the enclosing group's middleware executes
	// first.
	Middleware []string

	// Namespace is prepended to class-style string handler references.
	Namespace string

	// Name is a route-name fragment. Fragments concatenate with NO
	// separator, so callers supply their own trailing delimiter
	// (e.g. "admin."). This asymmetry with Prefix and Namespace is
	// inherited behavior and preserved deliberately.
	Name string
}

// Scope is the accumulated attribute set a route inherits at registration
// time. A Scope never mutates; Merge returns a new value. Nested groups are
// modeled as a chain of Merge calls, so composition is purely additive.
type Scope struct {
	prefix     string
	middleware []string
	namespace  string
	namePrefix string
}

// Merge combines a parent scope with child attributes and returns the
// resulting scope. The receiver is unchanged.
func (s Scope) Merge(a Attrs) Scope {
	merged := Scope{
		prefix:     s.prefix,
		namespace:  joinNamespace(s.namespace, a.Namespace),
		namePrefix: s.namePrefix + a.Name,
	}
	if a.Prefix != "" {
		merged.prefix = JoinPaths(s.prefix, a.Prefix)
	}
	if n := len(s.middleware) + len(a.Middleware); n > 0 {
		mw := make([]string, 0, n)
		mw = append(mw, s.middleware...)
		mw = append(mw, a.Middleware...)
		merged.middleware = mw
	}
	return merged
}

// Prefix returns the accumulated, normalized path prefix.
func (s Scope) Prefix() string {
	return s.prefix
}

// Middleware returns the accumulated middleware references, outermost first.
// Callers must not modify the returned slice.
func (s Scope) Middleware() []string {
	return s.middleware
}

// Namespace returns the accumulated handler namespace.
func (s Scope) Namespace() string {
	return s.namespace
}

// NamePrefix returns the accumulated route-name fragment.
func (s Scope) NamePrefix() string {
	return s.namePrefix
}

// IsZero reports whether the scope contributes nothing.
func (s Scope) IsZero() bool {
	return s.prefix == "" && len(s.middleware) == 0 && s.namespace == "" && s.namePrefix == ""
}

// NormalizePath canonicalizes a route path or prefix: exactly one leading
// slash, no internal double slashes, and no trailing slash unless the whole
// path is "/".
func NormalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

// JoinPaths concatenates a prefix and a path and re-normalizes the result.
func JoinPaths(prefix, path string) string {
	if prefix == "" || prefix == "/" {
		return NormalizePath(path)
	}
	if path == "" || path == "/" {
		return NormalizePath(prefix)
	}
	return NormalizePath(prefix + "/" + path)
}

// joinNamespace joins two namespace fragments with a single dot.
func joinNamespace(parent, child string) string {
	parent = strings.Trim(parent, ".")
	child = strings.Trim(child, ".")
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}
