// Package metrics 业务指标，通过 /metrics 暴露给 Prometheus
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Signups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "groupies_signups_total",
			Help: "Total successful signups",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupies_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success / failed
	)

	Joins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupies_joins_total",
			Help: "Join attempts by outcome",
		},
		[]string{"outcome"},
	)

	GroupsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "groupies_groups_completed_total",
			Help: "Groups that reached their capacity",
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groupies_notifications_total",
			Help: "Notification deliveries by sink and result",
		},
		[]string{"sink", "result"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "groupies_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveHTTP 记录一次请求耗时，route 为空时按 unmatched 归类，避免路径爆炸
func ObserveHTTP(method, route string, status int, cost time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(cost.Seconds())
}

// NotificationResult 记录一次通知投递
func NotificationResult(sink string, err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	Notifications.WithLabelValues(sink, result).Inc()
}

// Handler Prometheus 抓取入口
func Handler() http.Handler {
	return promhttp.Handler()
}
