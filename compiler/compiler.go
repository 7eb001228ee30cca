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

package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

// Default placeholder patterns. Required parameters match a single path
// segment. Optional parameters match greedily across segment boundaries;
// this mirrors the behavior of the toolkit this engine descends from and is
// intentionally preserved rather than silently fixed. Callers that need
// segment-bounded optionals should register an explicit constraint.
const (
	DefaultRequiredPattern = `[^/]+`
	DefaultOptionalPattern = `.+`
)

// paramNameRe validates placeholder names. Names must be usable as regexp
// capture group names.
var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Param describes one placeholder in a path template, in the order it
// appears left to right.
type Param struct {
	Name     string
	Optional bool
}

// Pattern is a compiled path template. It matches complete request paths
// (anchored at both ends) and extracts named parameter values.
//
// A Pattern is immutable after Compile and safe for concurrent use.
type Pattern struct {
	template string
	re       *regexp.Regexp
	params   []Param
}

// Compile turns a path template into a Pattern. Placeholders take the form
// {name} (required) or {name?} (optional). The constraints map supplies
// per-parameter regex fragments registered via Where; parameters without an
// entry use the defaults.
//
// Compilation order matters and is fixed:
//  1. Optional placeholders preceded by a slash absorb that slash into the
//     optional group, so "/a/{b?}" matches both "/a" and "/a/x".
//  2. Other optional placeholders compile to an inline optional group.
//  3. Required placeholders compile to mandatory capture groups.
//  4. Literal text is quoted, so templates may contain regex metacharacters.
//
// The resulting regexp is anchored and matched against the full path, never
// as a prefix. Go's regexp engine is UTF-8 native, so parameter values may
// contain arbitrary Unicode.
//
// A brace sequence that is not a well-formed placeholder (unterminated, or
// an invalid name) is treated as literal text.
func Compile(template string, constraints map[string]string) (*Pattern, error) {
	var (
		re     strings.Builder
		lit    strings.Builder
		params []Param
	)
	re.WriteString("^")

	flushLiteral := func(trimTrailingSlash bool) bool {
		s := lit.String()
		lit.Reset()
		absorbed := false
		if trimTrailingSlash && strings.HasSuffix(s, "/") {
			s = s[:len(s)-1]
			absorbed = true
		}
		if s != "" {
			re.WriteString(regexp.QuoteMeta(s))
		}
		return absorbed
	}

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			lit.WriteString(rest)
			break
		}
		inner := rest[open+1 : open+closing]
		name, optional := strings.CutSuffix(inner, "?")
		if !paramNameRe.MatchString(name) {
			// Not a placeholder; keep the braces as literal text.
			lit.WriteString(rest[:open+closing+1])
			rest = rest[open+closing+1:]
			continue
		}

		lit.WriteString(rest[:open])
		rest = rest[open+closing+1:]

		pat, ok := constraints[name]
		if !ok {
			if optional {
				pat = DefaultOptionalPattern
			} else {
				pat = DefaultRequiredPattern
			}
		}

		group := fmt.Sprintf("(?P<%s>%s)", name, pat)
		switch {
		case optional:
			if flushLiteral(true) {
				// Slash-absorbing form: the whole "/value" tail is optional.
				re.WriteString("(?:/" + group + ")?")
			} else {
				re.WriteString("(?:" + group + ")?")
			}
		default:
			flushLiteral(false)
			re.WriteString(group)
		}
		params = append(params, Param{Name: name, Optional: optional})
	}
	flushLiteral(false)
	re.WriteString("$")

	compiled, err := regexp.Compile(re.String())
	if err != nil {
		return nil, fmt.Errorf("compile route template %q: %w", template, err)
	}
	return &Pattern{template: template, re: compiled, params: params}, nil
}

// MustCompile is Compile but panics on error. Intended for registration-time
// use where an invalid template or constraint is a programmer error.
func MustCompile(template string, constraints map[string]string) *Pattern {
	p, err := Compile(template, constraints)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Match runs the pattern against a full request path. On success it returns
// the extracted parameter map; optional parameters that did not participate
// in the match are omitted from the map entirely.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	idx := p.re.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.params))
	for i, name := range p.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		start, end := idx[2*i], idx[2*i+1]
		if start < 0 {
			continue
		}
		params[name] = path[start:end]
	}
	return params, true
}

// MatchOnly reports whether the path matches without extracting parameters.
// Used by the allowed-methods scan where values are irrelevant.
func (p *Pattern) MatchOnly(path string) bool {
	return p.re.MatchString(path)
}

// Params returns the placeholders in template order.
func (p *Pattern) Params() []Param {
	return p.params
}

// Template returns the original path template.
func (p *Pattern) Template() string {
	return p.template
}

// Regexp exposes the compiled expression for diagnostics.
func (p *Pattern) Regexp() string {
	return p.re.String()
}

// ParseParams extracts the placeholder list from a template without
// compiling a matcher. Registration uses this to record parameter order
// before any constraint is known.
func ParseParams(template string) []Param {
	var params []Param
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return params
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return params
		}
		inner := rest[open+1 : open+closing]
		name, optional := strings.CutSuffix(inner, "?")
		if paramNameRe.MatchString(name) {
			params = append(params, Param{Name: name, Optional: optional})
		}
		rest = rest[open+closing+1:]
	}
}

// IsStatic reports whether a template is eligible for exact-key lookup.
// Classification is deliberately byte-level: any "{" makes the template
// dynamic, even if the brace sequence is malformed and will end up matching
// literally. Malformed templates stay out of the static tier so lookup and
// matching never disagree.
func IsStatic(template string) bool {
	return !strings.Contains(template, "{")
}
