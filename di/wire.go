//go:build wireinject
// +build wireinject

package di

import (
	"concierge/config"
	"concierge/infras/jwt"
	"concierge/infras/kafka"
	"concierge/infras/ocr"
	"concierge/infras/otel"
	"concierge/infras/postgres"
	"concierge/infras/redis"
	"concierge/infras/s3"
	"concierge/infras/whatsapp"
	"concierge/internal/conversation"
	"concierge/internal/links"
	"concierge/internal/scheduler"
	"concierge/shared/cache"
	"concierge/transport/http"
	"concierge/transport/http/middleware"
	"concierge/transport/http/router"

	bookingRepository "concierge/internal/domains/booking/repository"
	bookingService "concierge/internal/domains/booking/service"
	catalogRepository "concierge/internal/domains/catalog/repository"
	reminderRepository "concierge/internal/domains/reminder/repository"
	roomRepository "concierge/internal/domains/room/repository"
	userRepository "concierge/internal/domains/user/repository"
	verificationRepository "concierge/internal/domains/verification/repository"
	verificationService "concierge/internal/domains/verification/service"

	bookingHandler "concierge/internal/handlers/booking"
	webhookHandler "concierge/internal/handlers/webhook"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	whatsapp.New,
	ocr.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	scheduler.New,
	links.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	roomRepository.New,
	userRepository.New,
	reminderRepository.New,
)

var verificationDomain = wire.NewSet(
	verificationRepository.New,
	verificationService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
)

var domains = wire.NewSet(
	bookingDomain,
	verificationDomain,
	catalogDomain,
)

var conversations = wire.NewSet(
	conversation.NewGuestRouter,
	conversation.NewAdminRouter,
	conversation.NewDispatcher,
	scheduler.NewServiceReminderLoop,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	webhookHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		conversations,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
