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

package schema

import "net/http"

// A Request represents a GraphQL request.  It makes no guarantees that the
// request is valid: in particular Query may be empty, which is only rejected
// at execution time so that console-serving GET requests aren't rejected
// while being decoded.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`

	Header http.Header `json:"-"`
}

// A RequestBatch is what body decoding produces: either a single request, or
// an ordered list of requests from a JSON array body.  Batch records which of
// the two the client sent, so downstream stages never re-inspect the body
// shape: a single-request batch and a one-element array are different things
// (the latter is refused unless batching is enabled, and is answered with a
// JSON array).
type RequestBatch struct {
	Requests []*Request
	Batch    bool
}

// SingleRequest wraps req as a non-batch RequestBatch.
func SingleRequest(req *Request) *RequestBatch {
	return &RequestBatch{Requests: []*Request{req}}
}
