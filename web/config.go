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

// Config is the server configuration, captured once at construction and
// read-only from then on.  There is deliberately no way to mutate it in
// process: anything that needs different settings builds a new server.
type Config struct {
	// Console enables serving the interactive console to HTML-preferring
	// GET requests.
	Console bool

	// ConsoleDefaultQuery and ConsoleDefaultVariables pre-fill the console
	// editor.  Both are embedded into the console page as JSON string
	// literals, so they can never break out of the enclosing script.
	ConsoleDefaultQuery     string
	ConsoleDefaultVariables string

	// ConsoleTemplatePath optionally overrides the built-in console page.
	// The file is read once when the server is built.
	ConsoleTemplatePath string

	// CORS adds Access-Control-* headers to every response.
	CORS bool

	// HealthPath, if set, answers GET requests on that path with a plain
	// "OK" and no authentication.
	HealthPath string

	// Auth requires a valid bearer token on every non-preflight,
	// non-health request.
	Auth bool

	// Batching allows JSON array bodies carrying multiple operations.
	// When off, array bodies are rejected outright.
	Batching bool
}
