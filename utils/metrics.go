package utils

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_http_requests_total", Help: "Total HTTP requests served"},
		[]string{"method", "path", "status"},
	)
	PaymentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "outreach_payments_created_total", Help: "Total payment registrations created"},
	)
	ProofUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "outreach_proof_uploads_total", Help: "Total proof-of-payment uploads"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(RequestsTotal, PaymentsCreated, ProofUploads)
}
