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
	"os"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Option configures a Recorder. An option may return a meter provider; the
// last non-nil one wins, otherwise the global provider is used.
type Option func(*Recorder) (metric.MeterProvider, error)

// WithMeterProvider records through a caller-supplied provider. The caller
// keeps ownership; Shutdown on the Recorder is a no-op.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(*Recorder) (metric.MeterProvider, error) {
		return provider, nil
	}
}

// WithPrometheus builds a dedicated meter provider backed by a private
// Prometheus registry and exposes its scrape endpoint through
// Recorder.PrometheusHandler.
func WithPrometheus() Option {
	return func(r *Recorder) (metric.MeterProvider, error) {
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.prometheusHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		r.shutdown = provider.Shutdown
		return provider, nil
	}
}

// WithOTLP builds a dedicated meter provider that periodically pushes
// metrics to an OTLP collector over HTTP. The endpoint may be a bare
// "host:port" or a URL; an explicit http:// scheme selects an insecure
// connection, and any path component is ignored. An empty endpoint defers to
// the exporter's environment-based defaults.
//
// Example:
//
//	rec := metrics.MustNew(metrics.WithOTLP("http://localhost:4318"))
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) (metric.MeterProvider, error) {
		var opts []otlpmetrichttp.Option
		if endpoint != "" {
			target := endpoint
			insecure := false
			if strings.HasPrefix(target, "http://") {
				target = strings.TrimPrefix(target, "http://")
				insecure = true
			} else if strings.HasPrefix(target, "https://") {
				target = strings.TrimPrefix(target, "https://")
			}
			if idx := strings.Index(target, "/"); idx != -1 {
				target = target[:idx]
			}
			opts = append(opts, otlpmetrichttp.WithEndpoint(target))
			if insecure {
				opts = append(opts, otlpmetrichttp.WithInsecure())
			}
		}
		exporter, err := otlpmetrichttp.New(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		provider := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		)
		r.shutdown = provider.Shutdown
		return provider, nil
	}
}

// WithStdout builds a dedicated meter provider that periodically dumps
// metrics to standard output. Intended for development.
func WithStdout() Option {
	return func(r *Recorder) (metric.MeterProvider, error) {
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		provider := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		)
		r.shutdown = provider.Shutdown
		return provider, nil
	}
}

// WithExcludePaths skips recording for exact request paths, typically
// health and scrape endpoints. Context enrichment still applies to
// excluded requests.
func WithExcludePaths(paths ...string) Option {
	return func(r *Recorder) (metric.MeterProvider, error) {
		for _, p := range paths {
			r.excluded[p] = struct{}{}
		}
		return nil, nil
	}
}
