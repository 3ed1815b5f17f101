// Package metrics holds the service's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	TrackRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "track_requests_total",
			Help: "Total number of track requests received",
		},
	)

	TokenValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validation_failures_total",
			Help: "Total number of rejected capability tokens",
		},
	)

	LinksIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "links_issued_total",
			Help: "Total number of tracking links issued",
		},
	)

	RecordsProvisionedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "records_provisioned_total",
			Help: "Total number of status records created",
		},
	)

	// UpstreamFailuresTotal distinguishes which external system failed;
	// the HTTP response deliberately does not.
	UpstreamFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_failures_total",
			Help: "Total number of failed calls to external systems",
		},
		[]string{"system"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(TrackRequestsTotal)
	prometheus.MustRegister(TokenValidationFailuresTotal)
	prometheus.MustRegister(LinksIssuedTotal)
	prometheus.MustRegister(RecordsProvisionedTotal)
	prometheus.MustRegister(UpstreamFailuresTotal)
	prometheus.MustRegister(RequestDuration)
}
