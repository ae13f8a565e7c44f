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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/graphward/gqlserve/authorization"
	"github.com/graphward/gqlserve/resolve"
	"github.com/graphward/gqlserve/web"
	"github.com/graphward/gqlserve/x"
)

// Server is the subcommand invoked as "gqlserve server".
var Server x.SubCommand

func init() {
	Server.Cmd = &cobra.Command{
		Use:   "server",
		Short: "Run the GraphQL HTTP server",
		Long: `
Run the GraphQL HTTP server against the built-in example schema.  Most
deployments embed the web package behind their own schema instead; this
command exists to try out the transport, console and auth behavior.
`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
	Server.EnvPrefix = "GQLSERVE_SERVER"

	flag := Server.Cmd.Flags()
	flag.IntP("port", "p", 5000, "Port to listen on.")
	flag.Bool("console", true,
		"Serve the interactive console to HTML-preferring GET requests.")
	flag.String("console_query", "",
		"Default query pre-filled in the console editor.")
	flag.String("console_variables", "",
		"Default variables pre-filled in the console editor.")
	flag.String("console_template", "",
		"Path to an HTML file overriding the built-in console page.")
	flag.Bool("cors", false, "Add CORS headers to every response.")
	flag.String("health", "",
		"Path answering unauthenticated health checks with a plain OK, e.g. /healthz.")
	flag.Bool("batching", false,
		"Allow JSON array bodies carrying multiple operations.")
	flag.Bool("auth", false,
		"Require a valid bearer token on every non-preflight request.")
	flag.String("auth_issuer", "",
		"OpenID Connect issuer URL; the JWKS location is discovered from its "+
			"well-known configuration.")
	flag.String("auth_audience", "", "Audience tokens must carry.")
	flag.Duration("jwks_refresh", time.Hour,
		"Interval between background JWKS key set refreshes.")
}

func run() {
	config := web.Config{
		Console:                 Server.GetBool("console"),
		ConsoleDefaultQuery:     Server.GetString("console_query"),
		ConsoleDefaultVariables: Server.GetString("console_variables"),
		ConsoleTemplatePath:     Server.GetString("console_template"),
		CORS:                    Server.GetBool("cors"),
		HealthPath:              Server.GetString("health"),
		Auth:                    Server.GetBool("auth"),
		Batching:                Server.GetBool("batching"),
	}

	var validator web.TokenValidator
	if config.Auth {
		v, err := authorization.New(authorization.Config{
			Issuer:          Server.GetString("auth_issuer"),
			Audience:        Server.GetString("auth_audience"),
			RefreshInterval: Server.GetDuration("jwks_refresh"),
		})
		x.Checkf(err, "while building the token validator")
		defer v.Close()
		validator = v
	}

	gqlServer, err := web.NewServer(resolve.GraphGophers(exampleSchema()), validator, config)
	x.Checkf(err, "while building the GraphQL server")

	mux := http.NewServeMux()
	mux.Handle("/", gqlServer.HTTPHandler())
	x.RegisterPrometheusExporter(mux)

	port := Server.GetInt("port")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		glog.Infof("Serving GraphQL on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("Server stopped: %v", err)
		}
	}()

	sdCh := make(chan os.Signal, 3)
	signal.Notify(sdCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sdCh

	glog.Infoln("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	x.Ignore(srv.Shutdown(ctx))
	glog.Flush()
}
