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
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/graphward/gqlserve/x"
)

func TestWriteToDataOnly(t *testing.T) {
	resp := &Response{Data: json.RawMessage(`{"hello":"world"}`)}

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":{"hello":"world"}}`, buf.String())
}

func TestWriteToErrorsOnly(t *testing.T) {
	resp := ErrorResponsef("something went %s", "wrong")

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	require.JSONEq(t, `{"errors":[{"message":"something went wrong"}]}`, buf.String())
}

func TestWriteToErrorsAndData(t *testing.T) {
	resp := &Response{
		Errors: x.GqlErrorList{
			x.GqlErrorf("partial failure").WithLocations(x.Location{Line: 2, Column: 3}),
		},
		Data: json.RawMessage(`{"hello":null}`),
	}

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"errors":[{"message":"partial failure","locations":[{"line":2,"column":3}]}],`+
			`"data":{"hello":null}}`,
		buf.String())
}

func TestWriteToNilResponse(t *testing.T) {
	var resp *Response

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"errors":[{"message":"Internal error - no response to write."}],"data":null}`,
		buf.String())
}

func TestErrorResponseWrapsAnyError(t *testing.T) {
	resp := ErrorResponse(errors.New("plain failure"))

	var buf bytes.Buffer
	_, err := resp.WriteTo(&buf)
	require.NoError(t, err)
	require.JSONEq(t, `{"errors":[{"message":"plain failure"}]}`, buf.String())
}

func TestHTTPStatusDefaultsToOK(t *testing.T) {
	require.Equal(t, http.StatusOK, (&Response{}).HTTPStatus())

	var resp *Response
	require.Equal(t, http.StatusOK, resp.HTTPStatus())
}

func TestWithStatusOverrides(t *testing.T) {
	resp := ErrorResponsef("bad input").WithStatus(http.StatusBadRequest)
	require.Equal(t, http.StatusBadRequest, resp.HTTPStatus())
}
