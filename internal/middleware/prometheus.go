package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus instruments a service and registers its collectors with
// registerer. Registering the same label twice on one registerer panics.
func Prometheus(label string, registerer prometheus.Registerer) func(http.Handler) http.Handler {
	return func(
		counter *prometheus.CounterVec,
		duration prometheus.ObserverVec,
		inFlight prometheus.Gauge,
		requestSize prometheus.ObserverVec,
		responseSize prometheus.ObserverVec,
	) func(http.Handler) http.Handler {
		registerer.MustRegister(counter, duration, inFlight, requestSize, responseSize)
		return func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerInFlight(inFlight,
				promhttp.InstrumentHandlerDuration(duration,
					promhttp.InstrumentHandlerCounter(counter,
						promhttp.InstrumentHandlerResponseSize(responseSize,
							promhttp.InstrumentHandlerRequestSize(requestSize, next),
						))))
		}
	}(
		prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: `tmpfiles_` + label + `_requests`,
			Help: `A counter of total requests`,
		}, []string{`code`, `method`}),
		prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    `tmpfiles_` + label + `_duration`,
			Help:    `A histogram of request duration`,
			Buckets: []float64{.005, .025, .1, .25, 1, 5},
		}, []string{`code`, `method`}),
		prometheus.NewGauge(prometheus.GaugeOpts{
			Name: `tmpfiles_` + label + `_in_flight`,
			Help: `A gauge of requests currently in flight`,
		}),
		prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    `tmpfiles_` + label + `_request_size`,
			Help:    `A histogram of request size`,
			Buckets: []float64{200, 500, 900, 1500, 4096},
		}, []string{}),
		prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    `tmpfiles_` + label + `_response_size`,
			Help:    `A histogram of response size`,
			Buckets: []float64{200, 500, 900, 1500, 4096},
		}, []string{}),
	)
}
