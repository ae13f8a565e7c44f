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
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

//go:embed graphiql/index.html
var defaultConsoleHTML string

// loadConsole renders the console page once at server construction: template
// (built-in or the configured override file) with the default query and
// variables substituted in.
func loadConsole(cfg Config) (string, error) {
	tmpl := defaultConsoleHTML
	if cfg.ConsoleTemplatePath != "" {
		data, err := os.ReadFile(cfg.ConsoleTemplatePath)
		if err != nil {
			return "", errors.Wrap(err, "reading console template")
		}
		tmpl = string(data)
	}
	return renderConsole(tmpl, cfg.ConsoleDefaultQuery, cfg.ConsoleDefaultVariables), nil
}

// renderConsole substitutes the DEFAULT_QUERY and DEFAULT_VARIABLES
// placeholders.  Both values go through JSON string encoding, so whatever
// is configured ends up as an inert string literal inside the page's
// script context.
func renderConsole(tmpl, defaultQuery, defaultVariables string) string {
	tmpl = strings.Replace(tmpl, "DEFAULT_QUERY", jsonStringLiteral(defaultQuery), 1)
	return strings.Replace(tmpl, "DEFAULT_VARIABLES", jsonStringLiteral(defaultVariables), 1)
}

func jsonStringLiteral(s string) string {
	if s == "" {
		return `""`
	}
	js, err := json.Marshal(s)
	if err != nil {
		// Marshalling a string can't fail; guard anyway rather than panic
		// while rendering a page.
		glog.Errorf("Could not encode console default: %v", err)
		return `""`
	}
	return string(js)
}

// shouldServeConsole decides whether a GET request gets the interactive
// console instead of being executed.  The ?raw override always forces
// execution.
func (gh *graphqlHandler) shouldServeConsole(r *http.Request) bool {
	if !gh.config.Console {
		return false
	}
	if r.URL.Query().Has("raw") {
		return false
	}
	return acceptsHTML(r.Header.Get("Accept"))
}

// acceptsHTML reports whether the Accept header prefers HTML over JSON.
// When both tokens appear, whichever occurs first in the header wins,
// mirroring content-negotiation tie-break order.
func acceptsHTML(accept string) bool {
	htmlIdx := strings.Index(accept, "text/html")
	if htmlIdx < 0 {
		return false
	}
	jsonIdx := strings.Index(accept, "application/json")
	return jsonIdx < 0 || htmlIdx < jsonIdx
}

func (gh *graphqlHandler) serveConsole(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, gh.console); err != nil {
		glog.Error(err)
	}
}
