package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Admissions interface {
		Admitter
		ReservationGetter
	}
	Observer    AdmissionObserver
	Metrics     http.Handler
	JWTSecret   []byte
	CORSOrigins []string
	Logger      *log.Logger
}

// NewRouter assembles the service's HTTP surface.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(Auth(deps.JWTSecret))
		pr.Post("/bookings", HandleCreateBooking(deps.Admissions, deps.Observer))
		pr.Get("/bookings/{id}", HandleGetBooking(deps.Admissions))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return RequestLogger(CORS(deps.CORSOrigins, r), deps.Logger)
}
