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

import "errors"

// Matching outcomes (NotFound, MethodNotAllowed) are ordinary Match values,
// never errors. The sentinels below cover programmer errors, which fail
// loudly and are never silently defaulted.
var (
	// ErrUndefinedNamedRoute indicates that URL generation was asked for a
	// route name that was never indexed.
	ErrUndefinedNamedRoute = errors.New("undefined named route")

	// ErrMissingRouteParameter indicates that URL generation left a required
	// placeholder unfilled.
	ErrMissingRouteParameter = errors.New("missing required route parameter")

	// ErrInvalidHandlerReference indicates that an opaque handler value
	// could not be resolved to anything invokable.
	ErrInvalidHandlerReference = errors.New("handler reference cannot be invoked")

	// ErrServerTimeoutInvalid indicates that a server timeout value must be
	// positive.
	ErrServerTimeoutInvalid = errors.New("server timeout must be positive")
)
