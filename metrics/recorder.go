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

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/strada-dev/strada"
)

const meterName = "github.com/strada-dev/strada/metrics"

// Recorder implements strada.DispatchRecorder on top of OpenTelemetry
// metrics. It records a dispatch counter and a latency histogram, keyed by
// method, route template, and outcome — never the raw request path, so
// cardinality stays bounded by the route table.
type Recorder struct {
	meter      metric.Meter
	dispatches metric.Int64Counter
	latency    metric.Float64Histogram

	excluded map[string]struct{}

	prometheusHandler http.Handler
	shutdown          func(context.Context) error
}

// New builds a Recorder. Without a provider option it records through the
// global OpenTelemetry meter provider; WithPrometheus and WithStdout build
// and own a dedicated provider instead.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{excluded: make(map[string]struct{})}

	var provider metric.MeterProvider
	for _, opt := range opts {
		p, err := opt(r)
		if err != nil {
			return nil, err
		}
		if p != nil {
			provider = p
		}
	}
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	r.meter = provider.Meter(meterName)

	var err error
	r.dispatches, err = r.meter.Int64Counter(
		"router.dispatches",
		metric.WithDescription("Number of dispatches by method, route, and outcome"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dispatch counter: %w", err)
	}
	r.latency, err = r.meter.Float64Histogram(
		"router.dispatch.duration",
		metric.WithDescription("Time spent resolving a dispatch outcome"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dispatch histogram: %w", err)
	}
	return r, nil
}

// MustNew is New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}
	return r
}

// dispatchState is the opaque token threaded from start to end.
type dispatchState struct {
	method string
}

// OnDispatchStart implements strada.DispatchRecorder. Excluded paths return
// a nil state so the router skips OnDispatchEnd for them.
func (r *Recorder) OnDispatchStart(ctx context.Context, method, path string) (context.Context, any) {
	if _, skip := r.excluded[path]; skip {
		return ctx, nil
	}
	return ctx, &dispatchState{method: method}
}

// OnDispatchEnd implements strada.DispatchRecorder.
func (r *Recorder) OnDispatchEnd(ctx context.Context, state any, m strada.Match, elapsed time.Duration) {
	st, ok := state.(*dispatchState)
	if !ok {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", st.method),
		attribute.String("http.route", m.Pattern()),
		attribute.String("router.outcome", m.Kind.String()),
	)
	r.dispatches.Add(ctx, 1, attrs)
	r.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// PrometheusHandler returns the scrape handler when the Recorder was built
// with WithPrometheus, else nil.
func (r *Recorder) PrometheusHandler() http.Handler {
	return r.prometheusHandler
}

// Shutdown flushes and stops a provider owned by this Recorder. It is a
// no-op for recorders using the global or a caller-supplied provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}

var _ strada.DispatchRecorder = (*Recorder)(nil)
