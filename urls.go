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
	"fmt"
	"regexp"
	"strings"
)

var (
	// optionalPlaceholderRe strips unfilled optional placeholders together
	// with the leading slash their compiled form absorbs.
	optionalPlaceholderRe = regexp.MustCompile(`/?\{[A-Za-z_][A-Za-z0-9_]*\?\}`)

	// requiredPlaceholderRe finds required placeholders left unfilled.
	requiredPlaceholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// URLFor reverses a named route into a concrete path. Each supplied value
// replaces both the required and optional placeholder forms for its key;
// optional placeholders left unsupplied are stripped entirely, including
// their absorbed leading slash.
//
// Values are stringified with fmt.Sprint and substituted verbatim — no
// percent-encoding is applied, so the caller is responsible for supplying
// URL-safe values.
//
// An unregistered name returns ErrUndefinedNamedRoute; a required
// placeholder left unfilled returns ErrMissingRouteParameter. Both are
// programmer errors and never degrade to an empty string.
func (r *Router) URLFor(name string, params map[string]any) (string, error) {
	r.mu.Lock()
	rt, ok := r.named[name]
	r.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUndefinedNamedRoute, name)
	}

	path := rt.Template()
	for key, value := range params {
		v := fmt.Sprint(value)
		path = strings.ReplaceAll(path, "{"+key+"}", v)
		path = strings.ReplaceAll(path, "{"+key+"?}", v)
	}

	path = optionalPlaceholderRe.ReplaceAllString(path, "")
	if m := requiredPlaceholderRe.FindStringSubmatch(path); m != nil {
		return "", fmt.Errorf("%w: %q in route %q", ErrMissingRouteParameter, m[1], name)
	}
	if path == "" {
		path = "/"
	}
	return path, nil
}

// MustURLFor is URLFor but panics on error.
func (r *Router) MustURLFor(name string, params map[string]any) string {
	path, err := r.URLFor(name, params)
	if err != nil {
		panic(fmt.Sprintf("strada.MustURLFor: %v", err))
	}
	return path
}
