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

package server

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"
)

// The example schema served by "gqlserve server".
const exampleSchemaString = `
	schema {
		query: Query
	}

	type Query {
		hello: String!
		serverTime: String!
	}
`

type exampleResolver struct{}

func (*exampleResolver) Hello() string {
	return "world"
}

func (*exampleResolver) ServerTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func exampleSchema() *graphql.Schema {
	return graphql.MustParseSchema(exampleSchemaString, &exampleResolver{})
}
