package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ZIP code validation and provider search.
type Metrics struct {
	ZipValidations       *prometheus.CounterVec
	ZipDatasetSize       prometheus.Gauge
	ProviderSearches     prometheus.Counter
	ProviderSearchHits   prometheus.Histogram
	ProviderSearchTiming prometheus.Histogram
	ProvidersRegistered  prometheus.Counter
	RequestsSubmitted    *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ZipValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hvac_zip_validations_total",
			Help: "ZIP code validations by outcome",
		}, []string{"outcome"}),
		ZipDatasetSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hvac_zip_dataset_records",
			Help: "Number of ZIP codes in the loaded reference dataset",
		}),
		ProviderSearches: factory.NewCounter(prometheus.CounterOpts{
			Name: "hvac_provider_searches_total",
			Help: "Total number of provider searches by ZIP code",
		}),
		ProviderSearchHits: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hvac_provider_search_results",
			Help:    "Number of providers returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		ProviderSearchTiming: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hvac_provider_search_duration_seconds",
			Help:    "Duration of provider searches",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProvidersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "hvac_providers_registered_total",
			Help: "Total number of providers registered",
		}),
		RequestsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hvac_service_requests_submitted_total",
			Help: "Service requests submitted by urgency level",
		}, []string{"urgency"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hvac_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hvac_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveValidation records a validation outcome label such as "valid",
// "required", "format" or "not_found".
func (m *Metrics) ObserveValidation(outcome string) {
	if m == nil {
		return
	}
	m.ZipValidations.WithLabelValues(outcome).Inc()
}

// SetDatasetSize records the number of loaded ZIP codes.
func (m *Metrics) SetDatasetSize(n int) {
	if m == nil {
		return
	}
	m.ZipDatasetSize.Set(float64(n))
}

// ObserveSearch records one provider search.
// Call with time.Now() taken at the start of the search.
func (m *Metrics) ObserveSearch(start time.Time, results int) {
	if m == nil {
		return
	}
	m.ProviderSearches.Inc()
	m.ProviderSearchHits.Observe(float64(results))
	m.ProviderSearchTiming.Observe(time.Since(start).Seconds())
}

// IncrementProvidersRegistered records a successful provider registration.
func (m *Metrics) IncrementProvidersRegistered() {
	if m == nil {
		return
	}
	m.ProvidersRegistered.Inc()
}

// IncrementRequestsSubmitted records an accepted service request.
func (m *Metrics) IncrementRequestsSubmitted(urgency string) {
	if m == nil {
		return
	}
	m.RequestsSubmitted.WithLabelValues(urgency).Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
