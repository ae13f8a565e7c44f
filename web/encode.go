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

package web

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/golang/glog"

	"github.com/graphward/gqlserve/schema"
)

// commonHeaders adds the CORS header matrix to every response, error
// responses included.
func commonHeaders(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addCORSHeaders(cfg, w, r)
		next.ServeHTTP(w, r)
	})
}

func addCORSHeaders(cfg Config, w http.ResponseWriter, r *http.Request) {
	if !cfg.CORS {
		return
	}

	w.Header().Set("Access-Control-Allow-Methods", "GET, POST")

	allowHeaders := "Content-Type"
	if cfg.Auth {
		allowHeaders += ", Authorization"
	}
	w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

	if cfg.Auth {
		// Credentialed requests may not use a wildcard origin, so the
		// request's own origin is reflected back.
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
	} else {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		glog.Error(err)
	}
}

// writeErrors renders transport-level failures (bad input, bad credentials,
// internal errors) as {"errors": [...]} with the given status.  Internal
// detail never travels here — callers log it and pass a generic message.
func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	js, err := json.Marshal(struct {
		Errors []string `json:"errors"`
	}{Errors: msgs})
	if err != nil {
		glog.Errorf("%v", err)
		js = []byte(`{"errors":["Internal Server Error"]}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		glog.Error(err)
	}
}

// writeResponses sends execution results: a bare object for a single
// operation, a JSON array in input order for a batch.  The overall status
// is the worst element status (execution errors are normally inside a 200
// per the GraphQL convention, but an executor may mark an element
// otherwise).
func writeResponses(w http.ResponseWriter, r *http.Request,
	isBatch bool, responses []*schema.Response) {

	status := http.StatusOK
	for _, resp := range responses {
		if resp.HTTPStatus() > status {
			status = resp.HTTPStatus()
		}
	}

	w.Header().Set("Content-Type", "application/json")

	// If the receiver accepts gzip, send gzipped content instead.
	var out io.Writer = w
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gzw := gzip.NewWriter(w)
		defer gzw.Close()
		out = gzw
	}

	w.WriteHeader(status)

	if !isBatch {
		if _, err := responses[0].WriteTo(out); err != nil {
			glog.Error(err)
		}
		return
	}

	write := func(p string) {
		if _, err := io.WriteString(out, p); err != nil {
			glog.Error(err)
		}
	}

	write("[")
	for i, resp := range responses {
		if i > 0 {
			write(",")
		}
		if _, err := resp.WriteTo(out); err != nil {
			glog.Error(err)
		}
	}
	write("]")
}
