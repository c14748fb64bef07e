package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	mutationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_entity_mutations_total",
		Help: "Total dashboard mutations by entity, operation and result",
	}, []string{"entity", "operation", "result"})

	loadFailureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_entity_load_failures_total",
		Help: "Total failed collection loads that degraded to an empty list",
	}, []string{"entity"})

	invitationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_invitations_total",
		Help: "Total user invitations by result",
	}, []string{"result"})

	signupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_waitlist_signups_total",
		Help: "Total public waitlist signups by result",
	}, []string{"result"})

	emailTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_emails_sent_total",
		Help: "Total confirmation emails by result",
	}, []string{"result"})

	httpRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stremini_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stremini_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// RecordMutation counts one create/update/delete against entity.
func RecordMutation(entity, operation string, err error) {
	mutationTotal.WithLabelValues(entity, operation, result(err)).Inc()
}

func RecordLoadFailure(entity string) {
	loadFailureTotal.WithLabelValues(entity).Inc()
}

func RecordInvitation(success bool) {
	if success {
		invitationTotal.WithLabelValues(ResultSuccess).Inc()
		return
	}
	invitationTotal.WithLabelValues(ResultError).Inc()
}

func RecordSignup(err error) {
	signupTotal.WithLabelValues(result(err)).Inc()
}

func RecordEmail(err error) {
	emailTotal.WithLabelValues(result(err)).Inc()
}

// ObserveHTTPRequest records one served request. route is the matched pattern, not the raw path.
func ObserveHTTPRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}
