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

package authorization

import "context"

type ctxKey string

const identityCtxKey = ctxKey("authorizedIdentity")

// WithIdentity annotates ctx with the identity of a validated caller.  The
// identity is request-scoped: it rides the request context into the
// executor and is discarded with it.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// FromContext returns the validated identity in ctx, or nil if the request
// was not authenticated (auth disabled, health check, pre-flight).
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityCtxKey).(*Identity)
	return id
}
