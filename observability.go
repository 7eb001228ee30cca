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
	"context"
	"time"
)

// DispatchRecorder provides observability lifecycle hooks around dispatch.
// Implementations typically record metrics (outcome counters, dispatch
// latency) and enrich trace spans.
//
// Lifecycle:
//  1. The serving adapter calls OnDispatchStart(ctx, method, path) and
//     always adopts the returned context, so context enrichment (trace
//     propagation, request-scoped loggers) applies even when the
//     implementation decides to exclude the request from recording.
//  2. A nil state token excludes the request: OnDispatchEnd is skipped.
//  3. After the outcome is known, OnDispatchEnd receives the Match and the
//     time dispatch took. Implementations should key metrics on
//     Match.Pattern(), never the raw path, to avoid cardinality explosion.
//
// All methods must be safe for concurrent use.
type DispatchRecorder interface {
	OnDispatchStart(ctx context.Context, method, path string) (context.Context, any)
	OnDispatchEnd(ctx context.Context, state any, m Match, elapsed time.Duration)
}
