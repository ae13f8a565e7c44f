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

	"github.com/graphward/gqlserve/schema"
)

// A Resolver is the engine that actually executes GraphQL operations.  The
// web layer treats it as an opaque, possibly slow call: it never inspects
// the query, and it must always get a response back, so Resolve returns a
// *schema.Response rather than an error — execution failures are reported
// inside the response per the GraphQL spec.
//
// Resolve is called once per operation; a batch request fans out into
// concurrent Resolve calls.  Implementations must be safe for concurrent
// use.  Request-scoped values (the authenticated identity, the request ID)
// arrive through ctx.
type Resolver interface {
	Resolve(ctx context.Context, req *schema.Request) *schema.Response
}

// ResolverFunc is an adapter to allow the use of ordinary functions as
// Resolvers.
type ResolverFunc func(ctx context.Context, req *schema.Request) *schema.Response

// Resolve calls f(ctx, req).
func (f ResolverFunc) Resolve(ctx context.Context, req *schema.Request) *schema.Response {
	return f(ctx, req)
}
