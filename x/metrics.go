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

package x

import (
	"net/http"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// Cumulative metrics.
	NumQueries = stats.Int64("num_queries_total",
		"Total number of GraphQL operations served", stats.UnitDimensionless)
	NumBadRequests = stats.Int64("num_bad_requests_total",
		"Total number of requests rejected before execution", stats.UnitDimensionless)
	LatencyMs = stats.Float64("latency",
		"Latency of GraphQL requests", stats.UnitMilliseconds)

	// Tag keys here
	KeyStatus, _ = tag.NewKey("status")

	// Tag values here
	TagValueStatusOK    = "ok"
	TagValueStatusError = "error"

	defaultLatencyMsDistribution = view.Distribution(
		0, 0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8, 10, 13, 16,
		20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500,
		650, 800, 1000, 2000, 5000, 10000, 20000, 50000, 100000)

	allViews = []*view.View{
		{
			Name:        "latency",
			Measure:     LatencyMs,
			Description: LatencyMs.Description(),
			Aggregation: defaultLatencyMsDistribution,
			TagKeys:     []tag.Key{KeyStatus},
		},
		{
			Name:        "num_queries_total",
			Measure:     NumQueries,
			Description: NumQueries.Description(),
			Aggregation: view.Count(),
			TagKeys:     []tag.Key{KeyStatus},
		},
		{
			Name:        "num_bad_requests_total",
			Measure:     NumBadRequests,
			Description: NumBadRequests.Description(),
			Aggregation: view.Count(),
			TagKeys:     []tag.Key{KeyStatus},
		},
	}
)

func init() {
	Check(view.Register(allViews...))
}

// RegisterPrometheusExporter adds a prometheus exporter for the opencensus
// views above and mounts its scrape handler on mux.
func RegisterPrometheusExporter(mux *http.ServeMux) {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: "gqlserve",
		OnError: func(err error) {
			glog.Errorf("Error while exporting metrics: %v", err)
		},
	})
	Checkf(err, "while registering prometheus exporter")

	view.RegisterExporter(pe)
	mux.Handle("/debug/prometheus_metrics", pe)
}
