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
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/graphward/gqlserve/schema"
)

// maxFormMemory bounds how much of a multipart body is held in memory while
// parsing; the rest spills to disk.
const maxFormMemory = 1 << 20

type gzreadCloser struct {
	*gzip.Reader
	io.Closer
}

func (gz gzreadCloser) Close() error {
	if err := gz.Reader.Close(); err != nil {
		return err
	}
	return gz.Closer.Close()
}

// getRequests extracts the GraphQL operation(s) carried by r, whatever the
// transport encoding.  Errors are always *DecodeError.
//
// A missing query string is not an error here: requests that end up serving
// the console never carry one, so that check belongs to execution time.
func getRequests(r *http.Request) (*schema.RequestBatch, error) {
	if r.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, decodeErrorf("unable to parse gzip body: %v", err)
		}
		r.Body = gzreadCloser{zr, r.Body}
	}

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, decodeErrorf("unable to parse media type: %v", err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/graphql":
		// The entire body is the query text.
		body, err := readBody(r)
		if err != nil {
			return nil, err
		}
		return schema.SingleRequest(&schema.Request{Query: string(body)}), nil

	case "application/json":
		body, err := readBody(r)
		if err != nil {
			return nil, err
		}
		return parseJSONBody(body)

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, decodeErrorf("unable to parse form body: %v", err)
		}
		req, err := fromValues(r.PostForm)
		if err != nil {
			return nil, err
		}
		return schema.SingleRequest(req), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, decodeErrorf("unable to parse multipart body: %v", err)
		}
		req, err := fromValues(url.Values(r.MultipartForm.Value))
		if err != nil {
			return nil, err
		}
		return schema.SingleRequest(req), nil
	}

	body, err := readBody(r)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		// No recognized content type.  Try JSON first, and if the body
		// isn't JSON treat all of it as the query text — never silently
		// drop what the client sent.
		if json.Valid(body) {
			return parseJSONBody(body)
		}
		return schema.SingleRequest(&schema.Request{Query: string(body)}), nil
	}

	if r.Method == http.MethodGet {
		req, err := fromValues(r.URL.Query())
		if err != nil {
			return nil, err
		}
		return schema.SingleRequest(req), nil
	}

	return schema.SingleRequest(&schema.Request{}), nil
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, decodeErrorf("unable to read request body: %v", err)
	}
	return body, nil
}

// parseJSONBody decodes a JSON body into a single request or, for a
// top-level array, a batch.  Numbers stay json.Number so that variable
// values round-trip to the executor without losing precision.
func parseJSONBody(body []byte) (*schema.RequestBatch, error) {
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()

	var raw interface{}
	if err := d.Decode(&raw); err != nil {
		return nil, decodeErrorf("invalid JSON body: %v", err)
	}

	switch params := raw.(type) {
	case map[string]interface{}:
		req, err := toRequest(params)
		if err != nil {
			return nil, err
		}
		return schema.SingleRequest(req), nil

	case []interface{}:
		if len(params) == 0 {
			return nil, decodeErrorf("empty batch")
		}
		reqs := make([]*schema.Request, 0, len(params))
		for _, entry := range params {
			obj, ok := entry.(map[string]interface{})
			if !ok {
				return nil, decodeErrorf("batch entries must be JSON objects")
			}
			req, err := toRequest(obj)
			if err != nil {
				return nil, err
			}
			reqs = append(reqs, req)
		}
		return &schema.RequestBatch{Requests: reqs, Batch: true}, nil

	default:
		return nil, decodeErrorf("GraphQL queries must be a JSON object")
	}
}

// toRequest maps loosely-typed request params onto a schema.Request.  All
// extraction paths funnel through here so the variables-as-JSON-string rule
// is applied uniformly.
func toRequest(params map[string]interface{}) (*schema.Request, error) {
	req := &schema.Request{}

	if query, ok := params["query"].(string); ok {
		req.Query = query
	}
	if op, ok := params["operationName"].(string); ok {
		req.OperationName = op
	}

	switch vars := params["variables"].(type) {
	case nil:
		// Absent or JSON null, nothing to do.
	case map[string]interface{}:
		req.Variables = vars
	case string:
		if vars == "" {
			break
		}
		parsed, err := parseVariables(vars)
		if err != nil {
			return nil, err
		}
		req.Variables = parsed
	default:
		return nil, decodeErrorf("variables are invalid JSON")
	}

	return req, nil
}

func parseVariables(s string) (map[string]interface{}, error) {
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()

	var vars map[string]interface{}
	if err := d.Decode(&vars); err != nil {
		return nil, decodeErrorf("variables are invalid JSON")
	}
	return vars, nil
}

// fromValues builds a request from flattened form or query-string fields.
func fromValues(values url.Values) (*schema.Request, error) {
	params := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return toRequest(params)
}
