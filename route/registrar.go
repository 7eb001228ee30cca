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

// Registrar is the route's view of the router that owns it. It exists so
// this package does not import the router package.
type Registrar interface {
	// RegisterNamedRoute indexes the route under name for reverse URL
	// generation. Indexing the same (name, route) pair twice is a no-op;
	// pointing an existing name at a different route re-points it.
	RegisterNamedRoute(name string, rt *Route)

	// IsFrozen reports whether the route table has been published for
	// concurrent dispatch. Fluent configuration is rejected after that.
	IsFrozen() bool
}
