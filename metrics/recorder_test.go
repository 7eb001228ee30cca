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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/strada-dev/strada"
)

func noop(w http.ResponseWriter, req *http.Request) {}

// manualRecorder wires the Recorder to an sdk manual reader so tests can
// collect datapoints deterministically.
func manualRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := New(WithMeterProvider(provider))
	require.NoError(t, err)
	return rec, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s should be an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestRecorderCountsDispatches(t *testing.T) {
	t.Parallel()
	rec, reader := manualRecorder(t)

	r := strada.MustNew(strada.WithObservability(rec))
	r.GET("/users/{id}", noop)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/2", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	rm := collect(t, reader)
	assert.EqualValues(t, 3, counterValue(t, rm, "router.dispatches"))
}

func TestRecorderLabelsByTemplateNotPath(t *testing.T) {
	t.Parallel()
	rec, reader := manualRecorder(t)

	r := strada.MustNew(strada.WithObservability(rec))
	r.GET("/users/{id}", noop)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/42", nil))

	rm := collect(t, reader)
	var routes []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("http.route")); ok {
					routes = append(routes, v.AsString())
				}
			}
		}
	}
	require.NotEmpty(t, routes)
	for _, route := range routes {
		assert.Equal(t, "/users/{id}", route, "the raw path must never become a label")
	}
}

func TestRecorderOutcomeLabels(t *testing.T) {
	t.Parallel()
	rec, reader := manualRecorder(t)

	r := strada.MustNew(strada.WithObservability(rec))
	r.POST("/widgets", noop)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/widgets", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/widgets", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	rm := collect(t, reader)
	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("router.outcome")); ok {
					outcomes[v.AsString()] += dp.Value
				}
			}
		}
	}
	assert.EqualValues(t, 1, outcomes["matched"])
	assert.EqualValues(t, 1, outcomes["method_not_allowed"])
	assert.EqualValues(t, 1, outcomes["not_found"])
}

func TestRecorderExcludePaths(t *testing.T) {
	t.Parallel()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := New(WithMeterProvider(provider), WithExcludePaths("/health"))
	require.NoError(t, err)

	r := strada.MustNew(strada.WithObservability(rec))
	r.GET("/health", noop)
	r.GET("/users", noop)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users", nil))

	rm := collect(t, reader)
	assert.EqualValues(t, 1, counterValue(t, rm, "router.dispatches"))
}

func TestRecorderIgnoresForeignState(t *testing.T) {
	t.Parallel()
	rec, reader := manualRecorder(t)

	// A state token the recorder did not issue is dropped, not miscounted.
	rec.OnDispatchEnd(context.Background(), "bogus", strada.Match{Kind: strada.KindMatched}, time.Millisecond)

	rm := collect(t, reader)
	assert.EqualValues(t, 0, counterValue(t, rm, "router.dispatches"))
}

func TestWithPrometheusExposesScrapeHandler(t *testing.T) {
	t.Parallel()
	rec, err := New(WithPrometheus())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })

	r := strada.MustNew(strada.WithObservability(rec))
	r.GET("/users", noop)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users", nil))

	h := rec.PrometheusHandler()
	require.NotNil(t, h)

	scrape := httptest.NewRecorder()
	h.ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "router_dispatches")
}

func TestWithOTLPBuildsOwnedProvider(t *testing.T) {
	t.Parallel()
	rec, err := New(WithOTLP("http://localhost:4318"))
	require.NoError(t, err)
	assert.Nil(t, rec.PrometheusHandler())

	r := strada.MustNew(strada.WithObservability(rec))
	r.GET("/users", noop)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users", nil))

	// Shutdown flushes to the collector; without one running it may error,
	// but it must return rather than hang.
	_ = rec.Shutdown(context.Background())
}

func TestWithOTLPBareHostPort(t *testing.T) {
	t.Parallel()
	rec, err := New(WithOTLP("collector.internal:4318"))
	require.NoError(t, err)
	assert.Nil(t, rec.PrometheusHandler())
	_ = rec.Shutdown(context.Background())
}

func TestShutdownWithoutOwnedProvider(t *testing.T) {
	t.Parallel()
	rec, _ := manualRecorder(t)
	assert.NoError(t, rec.Shutdown(context.Background()))
}
