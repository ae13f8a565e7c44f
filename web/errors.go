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

import "fmt"

// Messages that clients key off, so they are fixed here rather than
// composed at the call sites.
const (
	errMustProvideQuery = "Must provide query string."
	errBatchNotEnabled  = "Batch GraphQL requests are not enabled"
)

// A DecodeError is malformed client input found while extracting GraphQL
// operations from a request.  It's recoverable per-request and maps to
// HTTP 400 at the response encoding stage.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return e.Message
}

func decodeErrorf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Message: fmt.Sprintf(format, args...)}
}
