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
	"bytes"
	"compress/gzip"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRequestsFromQueryString(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/graphql?query={hello}&operationName=op&variables={\"name\":\"alice\"}", nil)

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.False(t, batch.Batch)
	require.Len(t, batch.Requests, 1)

	req := batch.Requests[0]
	require.Equal(t, "{hello}", req.Query)
	require.Equal(t, "op", req.OperationName)
	require.Equal(t, map[string]interface{}{"name": "alice"}, req.Variables)
}

func TestGetRequestsJSONBody(t *testing.T) {
	body := `{"query":"{hello}","operationName":"op","variables":{"name":"alice"}}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.False(t, batch.Batch)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
	require.Equal(t, "op", batch.Requests[0].OperationName)
	require.Equal(t, map[string]interface{}{"name": "alice"},
		batch.Requests[0].Variables)
}

func TestGetRequestsJSONBodyWithCharset(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql",
		strings.NewReader(`{"query":"{hello}"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
}

func TestGetRequestsVariablesAsJSONString(t *testing.T) {
	body := `{"query":"{hello}","variables":"{\"name\":\"alice\"}"}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"name": "alice"},
		batch.Requests[0].Variables)
}

func TestGetRequestsEmptyVariablesString(t *testing.T) {
	body := `{"query":"{hello}","variables":""}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Nil(t, batch.Requests[0].Variables)
}

func TestGetRequestsInvalidVariablesString(t *testing.T) {
	body := `{"query":"{hello}","variables":"not json"}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	_, err := getRequests(r)
	require.EqualError(t, err, "variables are invalid JSON")
}

func TestGetRequestsVariablesWrongType(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"number", `{"query":"{hello}","variables":42}`},
		{"array", `{"query":"{hello}","variables":["a","b"]}`},
		{"bool", `{"query":"{hello}","variables":true}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/graphql", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/json")

			_, err := getRequests(r)
			require.EqualError(t, err, "variables are invalid JSON")
		})
	}
}

func TestGetRequestsNullVariables(t *testing.T) {
	body := `{"query":"{hello}","variables":null}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Nil(t, batch.Requests[0].Variables)
}

func TestGetRequestsNumbersStayNumbers(t *testing.T) {
	body := `{"query":"{hello}","variables":{"big":9007199254740993}}`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, json.Number("9007199254740993"),
		batch.Requests[0].Variables["big"])
}

func TestGetRequestsGraphQLBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader("{hello}"))
	r.Header.Set("Content-Type", "application/graphql")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.False(t, batch.Batch)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
}

func TestGetRequestsFormBody(t *testing.T) {
	form := url.Values{
		"query":     {"{hello}"},
		"variables": {`{"name":"alice"}`},
	}
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
	require.Equal(t, map[string]interface{}{"name": "alice"},
		batch.Requests[0].Variables)
}

func TestGetRequestsMultipartBody(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("query", "{hello}"))
	require.NoError(t, mw.WriteField("operationName", "op"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/graphql", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
	require.Equal(t, "op", batch.Requests[0].OperationName)
}

func TestGetRequestsGzipBody(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"query":"{hello}"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r := httptest.NewRequest("POST", "/graphql", &buf)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Content-Encoding", "gzip")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
}

func TestGetRequestsBadGzipBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader("not gzip"))
	r.Header.Set("Content-Encoding", "gzip")

	_, err := getRequests(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to parse gzip body")
}

func TestGetRequestsBatch(t *testing.T) {
	body := `[{"query":"{one}"},{"query":"{two}"},{"query":"{three}"}]`
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.True(t, batch.Batch)
	require.Len(t, batch.Requests, 3)
	require.Equal(t, "{one}", batch.Requests[0].Query)
	require.Equal(t, "{two}", batch.Requests[1].Query)
	require.Equal(t, "{three}", batch.Requests[2].Query)
}

func TestGetRequestsSingleElementBatchStaysBatch(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql",
		strings.NewReader(`[{"query":"{hello}"}]`))
	r.Header.Set("Content-Type", "application/json")

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.True(t, batch.Batch)
	require.Len(t, batch.Requests, 1)
}

func TestGetRequestsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  string
	}{
		{"empty batch", `[]`, "empty batch"},
		{"non-object batch entry", `[{"query":"{x}"}, 42]`,
			"batch entries must be JSON objects"},
		{"scalar body", `"hello"`, "GraphQL queries must be a JSON object"},
		{"truncated JSON", `{"query":`, "invalid JSON body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/graphql", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/json")

			_, err := getRequests(r)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestGetRequestsNoContentTypeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql",
		strings.NewReader(`{"query":"{hello}"}`))

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
}

func TestGetRequestsNoContentTypeRawQuery(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader("{hello}"))

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.Equal(t, "{hello}", batch.Requests[0].Query)
}

func TestGetRequestsEmptyPost(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql", nil)

	batch, err := getRequests(r)
	require.NoError(t, err)
	require.False(t, batch.Batch)
	require.Len(t, batch.Requests, 1)
	require.Equal(t, "", batch.Requests[0].Query)
}

func TestGetRequestsBadContentType(t *testing.T) {
	r := httptest.NewRequest("POST", "/graphql", strings.NewReader("{hello}"))
	r.Header.Set("Content-Type", "application/json; =bad")

	_, err := getRequests(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to parse media type")
}
