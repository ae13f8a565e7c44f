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

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/graphward/gqlserve/x"
)

// GraphQL spec on response is here:
// https://graphql.github.io/graphql-spec/June2018/#sec-Response

// Response represents a GraphQL response.
type Response struct {
	Errors x.GqlErrorList
	Data   json.RawMessage

	// status is the HTTP status the response should be served with.  The
	// GraphQL convention is that execution errors are reported inside a 200
	// response, so the zero value maps to http.StatusOK; an executor may
	// override it for pre-execution validation failures.
	status int
}

// ErrorResponse formats an error as a list of GraphQL errors and builds
// a response with that error list and no data.
func ErrorResponse(err error) *Response {
	return &Response{
		Errors: AsGQLErrors(err),
	}
}

// ErrorResponsef returns a Response containing a single GraphQL error with a
// message obtained by Sprintf-ing the arguments.
func ErrorResponsef(format string, args ...interface{}) *Response {
	return &Response{
		Errors: x.GqlErrorList{x.GqlErrorf(format, args...)},
	}
}

// WithStatus overrides the HTTP status the response is served with and
// returns the same response (fluent style).
func (r *Response) WithStatus(status int) *Response {
	if r == nil {
		return nil
	}
	r.status = status
	return r
}

// HTTPStatus is the status the response should be served with, defaulting
// to 200 OK per the GraphQL over HTTP convention.
func (r *Response) HTTPStatus() int {
	if r == nil || r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// WriteTo writes the GraphQL response as unindented JSON to w
// and returns the number of bytes written and error, if any.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	if r == nil {
		i, err := w.Write([]byte(
			`{"errors":[{"message":"Internal error - no response to write."}],` +
				`"data":null}`))
		return int64(i), err
	}

	js, err := json.Marshal(struct {
		Errors x.GqlErrorList  `json:"errors,omitempty"`
		Data   json.RawMessage `json:"data,omitempty"`
	}{
		Errors: r.Errors,
		Data:   r.Data,
	})

	if err != nil {
		msg := "Internal error - failed to marshal a valid JSON response"
		glog.Errorf("%+v", errors.Wrap(err, msg))
		js = []byte(`{"errors":[{"message":"` + msg + `"}],"data":null}`)
	}

	i, err := w.Write(js)
	return int64(i), err
}
