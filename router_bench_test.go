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
	"testing"
)

func benchRouter(n int) *Router {
	r := MustNew()
	for i := 0; i < n; i++ {
		r.GET(fmt.Sprintf("/static/%d", i), noop)
		r.GET(fmt.Sprintf("/api/v%d/{id}", i), noop)
	}
	r.Freeze()
	return r
}

func BenchmarkDispatchStatic(b *testing.B) {
	r := benchRouter(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch("GET", "/static/50")
	}
}

func BenchmarkDispatchDynamic(b *testing.B) {
	r := benchRouter(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch("GET", "/api/v50/12345")
	}
}

func BenchmarkDispatchNotFound(b *testing.B) {
	r := benchRouter(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Dispatch("GET", "/nope/nope/nope")
	}
}

func BenchmarkDispatchParallel(b *testing.B) {
	r := benchRouter(100)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Dispatch("GET", "/api/v50/12345")
		}
	})
}

func BenchmarkURLFor(b *testing.B) {
	r := MustNew()
	r.GET("/users/{id}/posts/{post?}", noop).Name("users.posts")
	params := map[string]any{"id": 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.URLFor("users.posts", params); err != nil {
			b.Fatal(err)
		}
	}
}
