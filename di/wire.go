//go:build wireinject
// +build wireinject

package di

import (
	"spacy/config"
	"spacy/infras/jwt"
	"spacy/infras/kafka"
	"spacy/infras/mailer"
	"spacy/infras/otel"
	"spacy/infras/payment"
	"spacy/infras/postgres"
	"spacy/infras/redis"
	"spacy/infras/s3"
	"spacy/infras/scheduler"
	"spacy/internal/jobs"
	"spacy/permissions"
	"spacy/shared/cache"
	"spacy/transport/http"
	"spacy/transport/http/middleware"
	"spacy/transport/http/router"

	authService "spacy/internal/domains/auth/service"
	notificationService "spacy/internal/domains/notification/service"
	paymentService "spacy/internal/domains/payment/service"
	reservationRepository "spacy/internal/domains/reservation/repository"
	reservationService "spacy/internal/domains/reservation/service"
	spaceRepository "spacy/internal/domains/space/repository"
	spaceService "spacy/internal/domains/space/service"
	userRepository "spacy/internal/domains/user/repository"

	authHandler "spacy/internal/handlers/auth"
	eventHandler "spacy/internal/handlers/event"
	healthHandler "spacy/internal/handlers/health"
	paymentHandler "spacy/internal/handlers/payment"
	reservationHandler "spacy/internal/handlers/reservation"
	spaceHandler "spacy/internal/handlers/space"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	payment.New,
	scheduler.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var spaceDomain = wire.NewSet(
	spaceRepository.New,
	spaceService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	spaceDomain,
	reservationDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	spaceHandler.New,
	reservationHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeApplication() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		jobs.New,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeNotifier() *eventHandler.Handler {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mailer.New,
		notificationService.New,
		eventHandler.New,
	)

	return &eventHandler.Handler{}
}
