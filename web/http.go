/*
 * Copyright 2026 Graphward, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package web serves GraphQL over HTTP: it classifies each inbound request,
// extracts the operation payload(s) whatever the transport encoding, gates
// on bearer-token auth, and renders either an execution result, the
// interactive console, or a structured error.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"

	"github.com/graphward/gqlserve/api"
	"github.com/graphward/gqlserve/authorization"
	"github.com/graphward/gqlserve/resolve"
	"github.com/graphward/gqlserve/schema"
	"github.com/graphward/gqlserve/x"
)

// An IServeGraphQL can serve a GraphQL endpoint over HTTP.
type IServeGraphQL interface {

	// HTTPHandler returns a http.Handler that serves GraphQL.
	HTTPHandler() http.Handler

	// Resolve processes a GraphQL request using the wired resolver and
	// returns its response.
	Resolve(ctx context.Context, req *schema.Request) *schema.Response
}

// A TokenValidator authenticates a request's bearer token.
// *authorization.Validator is the production implementation.
type TokenValidator interface {
	ValidateRequest(r *http.Request) (*authorization.Identity, error)
}

type graphqlHandler struct {
	resolver  resolve.Resolver
	validator TokenValidator
	config    Config
	console   string
	handler   http.Handler
}

// NewServer returns a new IServeGraphQL serving resolver under config.
// validator may be nil when config.Auth is false.
func NewServer(resolver resolve.Resolver, validator TokenValidator, config Config) (IServeGraphQL, error) {
	console, err := loadConsole(config)
	if err != nil {
		return nil, err
	}

	gh := &graphqlHandler{
		resolver:  resolver,
		validator: validator,
		config:    config,
		console:   console,
	}
	gh.handler = withRequestID(instrument(config, recoveryHandler(commonHeaders(config, gh))))
	return gh, nil
}

func (gh *graphqlHandler) HTTPHandler() http.Handler {
	return gh.handler
}

func (gh *graphqlHandler) Resolve(ctx context.Context, req *schema.Request) *schema.Response {
	return gh.resolver.Resolve(ctx, req)
}

// ServeHTTP dispatches one GraphQL HTTP request: pre-flight and health
// checks first (no auth), then the auth gate, then the console-vs-execute
// decision, and finally decode → execute → encode.  Every failure becomes a
// response; nothing escapes to the caller.
func (gh *graphqlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "gqlserve.dispatch")
	defer span.End()

	if !gh.isValid() {
		panic("graphqlHandler not initialised")
	}

	if r.Method == http.MethodOptions {
		writeText(w, http.StatusOK, "OK")
		return
	}

	if gh.config.HealthPath != "" && r.Method == http.MethodGet &&
		r.URL.Path == gh.config.HealthPath {
		writeText(w, http.StatusOK, "OK")
		return
	}

	if gh.config.Auth {
		if gh.validator == nil {
			glog.Errorf("[%s] auth is enabled but no token validator is wired",
				api.RequestID(ctx))
			writeErrors(w, http.StatusInternalServerError,
				"GraphQL server is misconfigured")
			return
		}
		identity, err := gh.validator.ValidateRequest(r)
		if err != nil {
			writeErrors(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx = authorization.WithIdentity(ctx, identity)
	}

	if r.Method == http.MethodGet && gh.shouldServeConsole(r) {
		gh.serveConsole(w)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed,
			"Unrecognised request method. Please use GET or POST for GraphQL requests")
		return
	}

	batch, err := getRequests(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}

	if batch.Batch && !gh.config.Batching {
		writeErrors(w, http.StatusBadRequest, errBatchNotEnabled)
		return
	}

	for _, req := range batch.Requests {
		if req.Query == "" {
			writeErrors(w, http.StatusBadRequest, errMustProvideQuery)
			return
		}
		req.Header = r.Header
	}

	writeResponses(w, r, batch.Batch, gh.resolveAll(ctx, batch))
}

// resolveAll executes every operation in the batch.  Batch elements run
// concurrently — the resolver is the one potentially slow step and holds no
// lock shared with anything here — but results keep input order.
func (gh *graphqlHandler) resolveAll(ctx context.Context,
	batch *schema.RequestBatch) []*schema.Response {

	if !batch.Batch {
		return []*schema.Response{gh.resolver.Resolve(ctx, batch.Requests[0])}
	}

	responses := make([]*schema.Response, len(batch.Requests))
	g, ctx := errgroup.WithContext(ctx)
	for i, req := range batch.Requests {
		g.Go(func() error {
			responses[i] = gh.resolver.Resolve(ctx, req)
			return nil
		})
	}
	x.Ignore(g.Wait())
	return responses
}

func (gh *graphqlHandler) isValid() bool {
	return !(gh == nil || gh.resolver == nil)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(api.WithRequestID(r.Context())))
	})
}

func recoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer api.PanicHandler(api.RequestID(r.Context()), func(error) {
			writeErrors(w, http.StatusInternalServerError, "Internal Server Error")
		})

		next.ServeHTTP(w, r)
	})
}

// statusWriter captures the response status for instrumentation.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// instrument records request metrics.  Pre-flight acknowledgements and
// health checks aren't GraphQL operations, so they stay out of the counts.
func instrument(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions ||
			(cfg.HealthPath != "" && r.Method == http.MethodGet &&
				r.URL.Path == cfg.HealthPath) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		status := x.TagValueStatusOK
		measures := []stats.Measurement{
			x.NumQueries.M(1),
			x.LatencyMs.M(float64(time.Since(start)) / 1e6),
		}
		if sw.status >= http.StatusBadRequest {
			status = x.TagValueStatusError
			measures = append(measures, x.NumBadRequests.M(1))
		}
		x.Ignore(stats.RecordWithTags(r.Context(),
			[]tag.Mutator{tag.Upsert(x.KeyStatus, status)}, measures...))
	})
}
