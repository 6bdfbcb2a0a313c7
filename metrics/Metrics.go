package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "staffadmin_http_requests_total",
		Help: "Number of handled http requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "staffadmin_http_request_duration_seconds_histogram",
		Buckets: []float64{
			0.1, // 100 ms
			0.2,
			0.25,
			0.5,
			1,
			1.5,
			3,
			5,
			10,
		},
	},
	[]string{"path", "code", "method"},
)

var ProvisionedUsersCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "staffadmin_provisioned_users_total",
		Help: "Number of successfully provisioned staff users.",
	},
	[]string{},
)

var IdentityServicePages = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "staffadmin_identity_service_pages_total",
		Help: "Number of account pages fetched from the identity service.",
	},
	[]string{},
)

func RegisterAllPrometheusApplicationMetrics() {
	prometheus.Register(TotalRequests)
	prometheus.Register(HttpDuration)
	prometheus.Register(ProvisionedUsersCount)
	prometheus.Register(IdentityServicePages)
}
