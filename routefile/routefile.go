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

// Package routefile loads a declarative YAML route table into a router.
//
// Registration goes through the router's public surface, so every table
// invariant (normalization, static/dynamic classification, scope
// composition) holds exactly as if the routes had been registered in code:
//
//	routes:
//	  - methods: [GET]
//	    path: /health
//	    handler: health
//	groups:
//	  - prefix: /api
//	    middleware: [auth]
//	    name: "api."
//	    routes:
//	      - methods: [GET]
//	        path: /users/{id}
//	        handler: UserController@show
//	        name: users.show
//	        where:
//	          id: "[0-9]+"
//
// Handlers in a route file are always string references; resolving them to
// executables is the application invoker's job.
package routefile

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/strada-dev/strada"
	"github.com/strada-dev/strada/route"
)

// File is the top level of a route file.
type File struct {
	Routes []Route `yaml:"routes"`
	Groups []Group `yaml:"groups"`
}

// Route is one declarative route entry.
type Route struct {
	Methods    []string          `yaml:"methods"`
	Path       string            `yaml:"path"`
	Handler    string            `yaml:"handler"`
	Name       string            `yaml:"name"`
	Middleware []string          `yaml:"middleware"`
	Where      map[string]string `yaml:"where"`
}

// Group nests routes under shared attributes. Groups may nest arbitrarily.
type Group struct {
	Prefix     string   `yaml:"prefix"`
	Middleware []string `yaml:"middleware"`
	Namespace  string   `yaml:"namespace"`
	Name       string   `yaml:"name"`
	Routes     []Route  `yaml:"routes"`
	Groups     []Group  `yaml:"groups"`
}

// registrant is the slice of the registration surface the loader needs;
// both *strada.Router and *strada.Group provide it.
type registrant interface {
	Match(methods []string, path string, handler any) *route.Route
	Group(attrs strada.GroupAttrs, body func(*strada.Group))
}

// Load parses YAML route definitions and registers them on the router.
func Load(r *strada.Router, data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("routefile: parse: %w", err)
	}
	return register(r, f.Routes, f.Groups)
}

// LoadFile reads and loads a route file from disk.
func LoadFile(r *strada.Router, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("routefile: read %s: %w", path, err)
	}
	if err := Load(r, data); err != nil {
		return fmt.Errorf("routefile: %s: %w", path, err)
	}
	return nil
}

func register(target registrant, routes []Route, groups []Group) error {
	for i, entry := range routes {
		if err := registerRoute(target, entry); err != nil {
			return fmt.Errorf("route %d (%s): %w", i, entry.Path, err)
		}
	}
	for i, g := range groups {
		var groupErr error
		target.Group(strada.GroupAttrs{
			Prefix:     g.Prefix,
			Middleware: g.Middleware,
			Namespace:  g.Namespace,
			Name:       g.Name,
		}, func(sub *strada.Group) {
			groupErr = register(sub, g.Routes, g.Groups)
		})
		if groupErr != nil {
			return fmt.Errorf("group %d (%s): %w", i, g.Prefix, groupErr)
		}
	}
	return nil
}

func registerRoute(target registrant, entry Route) error {
	if entry.Path == "" {
		return fmt.Errorf("missing path")
	}
	if entry.Handler == "" {
		return fmt.Errorf("missing handler")
	}
	if len(entry.Methods) == 0 {
		return fmt.Errorf("missing methods")
	}
	// Validate constraint patterns up front so a bad file surfaces as an
	// error rather than a registration panic.
	for param, pattern := range entry.Where {
		if _, err := regexp.Compile("^(?:" + pattern + ")$"); err != nil {
			return fmt.Errorf("constraint %q: %w", param, err)
		}
	}

	rt := target.Match(entry.Methods, entry.Path, entry.Handler)
	if len(entry.Middleware) > 0 {
		rt.Middleware(entry.Middleware...)
	}
	for param, pattern := range entry.Where {
		rt.Where(param, pattern)
	}
	if entry.Name != "" {
		rt.Name(entry.Name)
	}
	return nil
}
