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
	"regexp"
)

// Well-known constraint patterns exposed through the Where* shortcuts.
const (
	// PatternNumber accepts decimal digits only.
	PatternNumber = `[0-9]+`

	// PatternAlpha accepts ASCII letters only.
	PatternAlpha = `[a-zA-Z]+`

	// PatternSlug accepts lowercase kebab-case identifiers such as
	// "getting-started" or "2026-roadmap".
	PatternSlug = `[a-z0-9]+(?:-[a-z0-9]+)*`
)

// Constraint restricts the values a route parameter accepts. The pattern is
// a regex fragment; the compiler anchors it inside the parameter's capture
// group.
type Constraint struct {
	Param   string
	Pattern string
}

// NewConstraint validates and builds a Constraint.
//
// It panics on an invalid regex. Constraints are registered during
// application startup, so an invalid pattern is a programmer error that
// should fail immediately rather than surface as a silent non-match at
// request time.
func NewConstraint(param, pattern string) Constraint {
	if _, err := regexp.Compile("^(?:" + pattern + ")$"); err != nil {
		panic(fmt.Sprintf("route: invalid constraint pattern %q for parameter %q: %v", pattern, param, err))
	}
	return Constraint{Param: param, Pattern: pattern}
}
