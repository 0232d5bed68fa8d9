package router

import (
	"net/http"

	_ "spacy/docs" // registers the swagger spec
	"spacy/internal/handlers/auth"
	"spacy/internal/handlers/health"
	"spacy/internal/handlers/payment"
	"spacy/internal/handlers/reservation"
	"spacy/internal/handlers/space"
	"spacy/shared/failure"
	"spacy/transport/http/response"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const apiVersion = "/v1"

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Space       space.Handler
	Reservation reservation.Handler
	Payment     payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts health at the root and everything else under /v1.
func (r *Router) SetupRoutes(mux chi.Router) {
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.NotFound("Route not found"))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	r.DomainHandlers.Health.Router(mux)

	mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Route(apiVersion, func(v1 chi.Router) {
		for _, mount := range []func(chi.Router){
			r.DomainHandlers.Health.Router,
			r.DomainHandlers.Auth.Router,
			r.DomainHandlers.Space.Router,
			r.DomainHandlers.Reservation.Router,
			r.DomainHandlers.Payment.Router,
		} {
			mount(v1)
		}
	})
}
