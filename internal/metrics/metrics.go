package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actnowlinks_registrations_total",
		Help: "Share link registrations, by whether a new record was written.",
	}, []string{"outcome"}) // created | existing

	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actnowlinks_redirects_total",
		Help: "Share link id resolutions.",
	}, []string{"status"}) // hit | miss

	RedirectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "actnowlinks_redirect_duration_seconds",
		Help:    "Time from request receipt to rendered redirect document.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	})

	ScreenshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actnowlinks_screenshots_total",
		Help: "Screenshot captures by outcome.",
	}, []string{"outcome"}) // ok | timeout | error
)
