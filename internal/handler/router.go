package handler

import (
	"net/http"

	"github.com/folio/backend/internal/contract"
	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/ratelimit"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps collects what NewRouter needs.
type RouterDeps struct {
	DB             repository.DB
	ContactService service.ContactService
	FrontendURL    string

	// Metrics may be nil. Gatherer, when set, is served at GET /metrics.
	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer

	// Limiter, when set, throttles POST /api/contact.
	Limiter           ratelimit.Limiter
	PerMinute         int
	TrustedProxyCount int
}

// NewRouter builds the API mux and wraps it in the middleware chain:
//
//	RequestID → RequestLogger → Recover → SecurityHeaders → CORS → mux
func NewRouter(d RouterDeps) http.Handler {
	contactHandler := NewContactHandler(d.ContactService, d.Metrics)

	var submit http.Handler = http.HandlerFunc(contactHandler.Submit)
	if d.Limiter != nil {
		submit = RateLimit(d.Limiter, d.PerMinute, d.TrustedProxyCount, d.Metrics)(submit)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", Health(d.DB))
	mux.Handle(contract.SubmitContact.Pattern(), submit)
	mux.HandleFunc(contract.SubmitContact.Path, contactHandler.MethodNotAllowed)
	if d.Gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(d.Gatherer))
	}

	return RequestID(RequestLogger(Recover(SecurityHeaders(CORS(d.FrontendURL)(mux)))))
}
