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

// Package metrics records dispatch outcomes through OpenTelemetry.
//
// The Recorder plugs into the router as its DispatchRecorder:
//
//	rec := metrics.MustNew(metrics.WithPrometheus(), metrics.WithExcludePaths("/metrics"))
//	r := strada.MustNew(strada.WithObservability(rec))
//	r.GET("/metrics", rec.PrometheusHandler())
//
// Exporters: WithPrometheus (pull, private registry), WithOTLP (push to a
// collector over HTTP), WithStdout (development), or any caller-supplied
// meter provider via WithMeterProvider.
//
// Metrics are keyed by route template and outcome, never the raw request
// path, so label cardinality is bounded by the route table.
package metrics
