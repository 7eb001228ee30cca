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
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Invoker resolves an opaque handler value into an executable handler and
// runs it. Handler invocation is deliberately outside the routing core; an
// application wires its own resolution (dependency containers, controller
// registries) through WithInvoker.
//
// An invoker must return an error wrapping ErrInvalidHandlerReference when
// the value cannot be resolved; the serving adapter escalates that as a
// panic rather than swallowing it.
type Invoker interface {
	Invoke(w http.ResponseWriter, req *http.Request, handler any, params map[string]string) error
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(w http.ResponseWriter, req *http.Request, handler any, params map[string]string) error

func (f InvokerFunc) Invoke(w http.ResponseWriter, req *http.Request, handler any, params map[string]string) error {
	return f(w, req, handler, params)
}

// defaultInvoker understands the stock handler shapes: http.Handler,
// plain handler functions, and handler functions taking the parameter map.
type defaultInvoker struct{}

func (defaultInvoker) Invoke(w http.ResponseWriter, req *http.Request, handler any, params map[string]string) error {
	switch h := handler.(type) {
	case http.Handler:
		h.ServeHTTP(w, req)
	case func(http.ResponseWriter, *http.Request):
		h(w, req)
	case func(http.ResponseWriter, *http.Request, map[string]string):
		h(w, req, params)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidHandlerReference, handler)
	}
	return nil
}

// NotFoundHandler customizes the response for NotFound outcomes.
type NotFoundHandler func(w http.ResponseWriter, req *http.Request)

// MethodNotAllowedHandler customizes the response for MethodNotAllowed
// outcomes. The allowed set is sorted and deduplicated.
type MethodNotAllowedHandler func(w http.ResponseWriter, req *http.Request, allowed []string)

// NoRoute sets an override handler for unmatched requests. Nil restores the
// default 404 response.
func (r *Router) NoRoute(h NotFoundHandler) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.noRoute = h
}

// NoMethod sets an override handler for method-not-allowed requests. Nil
// restores the default 405 response with its Allow header.
func (r *Router) NoMethod(h MethodNotAllowedHandler) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.noMethod = h
}

// paramsCtxKey carries the extracted parameter map in the request context.
type paramsCtxKey struct{}

// Params returns the route parameters extracted for this request, or nil if
// the request did not go through a matched dispatch.
func Params(req *http.Request) map[string]string {
	params, _ := req.Context().Value(paramsCtxKey{}).(map[string]string)
	return params
}

// Param returns one route parameter, or "" if absent.
func Param(req *http.Request, name string) string {
	return Params(req)[name]
}

// ServeHTTP adapts the dispatcher to net/http. The first request freezes
// the route table; after that requests are handled with no table
// synchronization at all.
//
// On a match the extracted parameters are stored on the request context
// (see Params) before the invoker runs the handler. Errors raised inside an
// invoked handler are the handler's own business — the adapter neither
// catches nor wraps them. A handler value the invoker cannot resolve is a
// programmer error and panics.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Freeze()

	ctx := req.Context()
	var obsState any
	started := time.Now()
	if r.observability != nil {
		var enriched context.Context
		enriched, obsState = r.observability.OnDispatchStart(ctx, req.Method, req.URL.Path)
		if enriched != ctx {
			ctx = enriched
			req = req.WithContext(ctx)
		}
	}

	m := r.Dispatch(req.Method, req.URL.Path)
	// Elapsed covers dispatch only; handler execution is not this adapter's
	// measurement to make.
	elapsed := time.Since(started)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("http.route", m.Pattern()))
	}
	if r.observability != nil && obsState != nil {
		defer func() {
			r.observability.OnDispatchEnd(ctx, obsState, m, elapsed)
		}()
	}

	switch m.Kind {
	case KindMatched:
		req = req.WithContext(context.WithValue(ctx, paramsCtxKey{}, m.Params))
		if err := r.invoker.Invoke(w, req, m.Route.Handler(), m.Params); err != nil {
			panic(fmt.Sprintf("strada: route %s: %v", m.Route.Template(), err))
		}
	case KindMethodNotAllowed:
		r.hookMu.RLock()
		hook := r.noMethod
		r.hookMu.RUnlock()
		if hook != nil {
			hook(w, req, m.Allowed)
			return
		}
		// RFC 9110: a 405 response must carry an Allow header.
		w.Header().Set("Allow", strings.Join(m.Allowed, ", "))
		http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
	default:
		r.hookMu.RLock()
		hook := r.noRoute
		r.hookMu.RUnlock()
		if hook != nil {
			hook(w, req)
			return
		}
		http.NotFound(w, req)
	}
}

// Serve starts an HTTP server on addr with the configured timeouts,
// optionally wrapped for HTTP/2 cleartext. It blocks until the server
// exits; use Shutdown from another goroutine for graceful termination.
func (r *Router) Serve(addr string) error {
	h := http.Handler(r)
	if r.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		r.emit(DiagH2CEnabled, "h2c enabled; use only in dev or behind a trusted LB", nil)
	}

	timeouts := r.serverTimeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	r.logger.Info("listening", "addr", addr, "h2c", r.enableH2C)
	return srv.ListenAndServe()
}

// Shutdown gracefully stops a server started with Serve, following the
// http.Server.Shutdown pattern. Returns nil if no server is running.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.server = nil
	r.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
