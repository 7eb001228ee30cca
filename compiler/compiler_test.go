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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileStaticTemplate(t *testing.T) {
	t.Parallel()
	p, err := Compile("/users/profile", nil)
	require.NoError(t, err)

	params, ok := p.Match("/users/profile")
	assert.True(t, ok)
	assert.Empty(t, params)

	_, ok = p.Match("/users/profile/extra")
	assert.False(t, ok, "anchored pattern must not prefix-match")
	_, ok = p.Match("/users")
	assert.False(t, ok)
}

func TestCompileRequiredParam(t *testing.T) {
	t.Parallel()
	p, err := Compile("/users/{id}", nil)
	require.NoError(t, err)

	params, ok := p.Match("/users/42")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "42"}, params)

	// Required params never span segments.
	_, ok = p.Match("/users/42/posts")
	assert.False(t, ok)
	_, ok = p.Match("/users/")
	assert.False(t, ok)
	_, ok = p.Match("/users")
	assert.False(t, ok)
}

func TestCompileMultipleParams(t *testing.T) {
	t.Parallel()
	p, err := Compile("/users/{id}/posts/{postID}", nil)
	require.NoError(t, err)

	params, ok := p.Match("/users/7/posts/99")
	require.True(t, ok)
	assert.Equal(t, "7", params["id"])
	assert.Equal(t, "99", params["postID"])

	names := p.Params()
	require.Len(t, names, 2)
	assert.Equal(t, "id", names[0].Name)
	assert.Equal(t, "postID", names[1].Name)
}

func TestCompileTrailingOptionalAbsorbsSlash(t *testing.T) {
	t.Parallel()
	p, err := Compile("/a/{b?}", nil)
	require.NoError(t, err)

	params, ok := p.Match("/a")
	require.True(t, ok, "optional segment must be omittable together with its slash")
	_, present := params["b"]
	assert.False(t, present, "unmatched optional must be absent from the param map")

	params, ok = p.Match("/a/x")
	require.True(t, ok)
	assert.Equal(t, "x", params["b"])

	// Trailing slash alone does not satisfy the optional group.
	_, ok = p.Match("/a/")
	assert.False(t, ok)
}

func TestCompileOptionalDefaultIsGreedy(t *testing.T) {
	t.Parallel()
	// Inherited behavior: the unconstrained optional default (.+) crosses
	// segment boundaries.
	p, err := Compile("/files/{path?}", nil)
	require.NoError(t, err)

	params, ok := p.Match("/files/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "a/b/c", params["path"])
}

func TestCompileInlineOptional(t *testing.T) {
	t.Parallel()
	p, err := Compile("/report{ext?}", map[string]string{"ext": `\.[a-z]+`})
	require.NoError(t, err)

	params, ok := p.Match("/report")
	require.True(t, ok)
	assert.NotContains(t, params, "ext")

	params, ok = p.Match("/report.pdf")
	require.True(t, ok)
	assert.Equal(t, ".pdf", params["ext"])
}

func TestCompileChainedTrailingOptionals(t *testing.T) {
	t.Parallel()
	p, err := Compile("/archive/{year?}/{month?}", map[string]string{
		"year":  `\d{4}`,
		"month": `\d{2}`,
	})
	require.NoError(t, err)

	params, ok := p.Match("/archive")
	require.True(t, ok)
	assert.Empty(t, params)

	params, ok = p.Match("/archive/2026")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"year": "2026"}, params)

	params, ok = p.Match("/archive/2026/08")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"year": "2026", "month": "08"}, params)
}

func TestCompileConstraints(t *testing.T) {
	t.Parallel()
	p, err := Compile("/users/{id}", map[string]string{"id": `[0-9]+`})
	require.NoError(t, err)

	_, ok := p.Match("/users/123")
	assert.True(t, ok)
	_, ok = p.Match("/users/abc")
	assert.False(t, ok, "constraint must reject non-digit values")
}

func TestCompileQuotesLiteralMetacharacters(t *testing.T) {
	t.Parallel()
	p, err := Compile("/v1.0/items/{id}", nil)
	require.NoError(t, err)

	_, ok := p.Match("/v1.0/items/5")
	assert.True(t, ok)
	_, ok = p.Match("/v1x0/items/5")
	assert.False(t, ok, "dot in literal text must not act as a wildcard")
}

func TestCompileUnicodePaths(t *testing.T) {
	t.Parallel()
	p, err := Compile("/städte/{name}", nil)
	require.NoError(t, err)

	params, ok := p.Match("/städte/zürich")
	require.True(t, ok)
	assert.Equal(t, "zürich", params["name"])
}

func TestCompileMalformedBracesAreLiteral(t *testing.T) {
	t.Parallel()
	for _, tmpl := range []string{"/a/{", "/a/{}", "/a/{na me}", "/a/{1bad}"} {
		p, err := Compile(tmpl, nil)
		require.NoError(t, err, "template %q", tmpl)
		assert.Empty(t, p.Params(), "template %q", tmpl)

		_, ok := p.Match(tmpl)
		assert.True(t, ok, "malformed template %q must match itself literally", tmpl)
	}
}

func TestCompileInvalidConstraintErrors(t *testing.T) {
	t.Parallel()
	_, err := Compile("/users/{id}", map[string]string{"id": `[0-9`})
	require.Error(t, err)

	assert.Panics(t, func() {
		MustCompile("/users/{id}", map[string]string{"id": `[0-9`})
	})
}

func TestParseParams(t *testing.T) {
	t.Parallel()
	params := ParseParams("/u/{a}/x/{b?}/{c}")
	require.Len(t, params, 3)
	assert.Equal(t, Param{Name: "a"}, params[0])
	assert.Equal(t, Param{Name: "b", Optional: true}, params[1])
	assert.Equal(t, Param{Name: "c"}, params[2])
}

func TestIsStatic(t *testing.T) {
	t.Parallel()
	assert.True(t, IsStatic("/users/profile"))
	assert.True(t, IsStatic("/"))
	assert.False(t, IsStatic("/users/{id}"))
	// Malformed braces still classify as dynamic so the static map and the
	// matcher never disagree.
	assert.False(t, IsStatic("/users/{oops"))
}

func FuzzPatternMatch(f *testing.F) {
	f.Add("/users/5")
	f.Add("/users/Ünïcode")
	f.Add("/users/a/b/c")
	f.Add("")
	f.Add("//")

	p := MustCompile("/users/{id}/files/{path?}", nil)
	f.Fuzz(func(t *testing.T, path string) {
		params, ok := p.Match(path)
		if ok {
			if _, present := params["id"]; !present {
				t.Fatalf("matched %q without required param", path)
			}
		}
	})
}
