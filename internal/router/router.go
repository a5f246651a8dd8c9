package router

import (
	"net/http"

	"hvac-finder/internal/handler"
	"hvac-finder/internal/metrics"
	"hvac-finder/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// gatherer backs the /metrics endpoint and m records request metrics; both
// may be nil.
func New(
	providerHandler *handler.ProviderHandler,
	zipCodeHandler *handler.ZipCodeHandler,
	serviceRequestHandler *handler.ServiceRequestHandler,
	apiKey string,
	gatherer prometheus.Gatherer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Provider routes
	mux.HandleFunc("GET /api/providers", providerHandler.Search)
	mux.HandleFunc("GET /api/providers/active", providerHandler.ListActive)
	mux.HandleFunc("GET /api/providers/{id}", providerHandler.GetByID)
	mux.HandleFunc("POST /api/providers", providerHandler.Register)
	mux.HandleFunc("POST /api/providers/{id}/service-areas", providerHandler.AddServiceArea)
	mux.HandleFunc("POST /api/providers/{id}/activate", providerHandler.Activate)
	mux.HandleFunc("POST /api/providers/{id}/deactivate", providerHandler.Deactivate)

	// ZIP code routes
	mux.HandleFunc("GET /api/zipcodes/{code}", zipCodeHandler.Validate)

	// Service request routes
	mux.HandleFunc("POST /api/service-requests", serviceRequestHandler.Submit)
	mux.HandleFunc("GET /api/service-requests/{id}", serviceRequestHandler.GetByID)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Metrics(m)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
