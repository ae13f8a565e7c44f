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

package resolve

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/graphward/gqlserve/schema"
	"github.com/graphward/gqlserve/x"
)

type graphGophers struct {
	schema *graphql.Schema
}

// GraphGophers returns a Resolver backed by a graph-gophers/graphql-go
// schema.  It's the stock engine behind the HTTP layer; anything that can
// execute an operation and shape a GraphQL response can stand in for it.
func GraphGophers(s *graphql.Schema) Resolver {
	return &graphGophers{schema: s}
}

func (g *graphGophers) Resolve(ctx context.Context, req *schema.Request) *schema.Response {
	resp := g.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	return &schema.Response{
		Data:   resp.Data,
		Errors: toGqlErrors(resp.Errors),
	}
}

func toGqlErrors(errs []*gqlerrors.QueryError) x.GqlErrorList {
	var result x.GqlErrorList
	for _, err := range errs {
		gqlErr := &x.GqlError{
			Message: err.Message,
			Path:    err.Path,
		}
		for _, loc := range err.Locations {
			gqlErr.Locations = append(gqlErr.Locations,
				x.Location{Line: loc.Line, Column: loc.Column})
		}
		result = append(result, gqlErr)
	}
	return result
}
