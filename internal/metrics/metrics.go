package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LocationSearchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_location_search_total",
		Help: "Total number of location_search requests",
	})
	LocationNotFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_location_not_found_total",
		Help: "Total location_search requests that resolved to no constituency",
	})
	LocationSearchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "serikali_location_search_duration_ms",
		Help:    "location_search duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 3000},
	})
	GeocodeFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_geocode_fail_total",
		Help: "Total forward geocode calls that errored",
	})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_geocode_cache_hits_total",
		Help: "Total geocode cache hits",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_geocode_cache_misses_total",
		Help: "Total geocode cache misses",
	})
	MailSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_mail_sent_total",
		Help: "Total contact messages relayed",
	})
	MailRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "serikali_mail_rejected_total",
		Help: "Total contact messages rejected as spam or rate limited",
	})
)

func init() {
	prometheus.MustRegister(LocationSearchTotal)
	prometheus.MustRegister(LocationNotFoundTotal)
	prometheus.MustRegister(LocationSearchDurationMs)
	prometheus.MustRegister(GeocodeFailTotal)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
	prometheus.MustRegister(MailSentTotal)
	prometheus.MustRegister(MailRejectedTotal)
}

// Handler exposes the registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
