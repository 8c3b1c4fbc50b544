package links

//go:generate go run go.uber.org/mock/mockgen -source=./links.go -destination=./mocks/links_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/infras/jwt"
	"concierge/infras/otel"
	"concierge/shared/cache"
	"concierge/shared/constant"
	"concierge/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	tokenKeyPrefix = "link_token"

	PurposeBooking = "booking_form"
	PurposePayment = "payment"
)

// Service issues and redeems single-use chat links. A link is a signed JWT
// whose id is parked in redis with a TTL; redeeming deletes the key, so a
// token can be spent exactly once and dies on its own when the TTL lapses.
type Service interface {
	IssueBookingLink(ctx context.Context, phone string) (url string, err error)
	IssuePaymentLink(ctx context.Context, phone, bookingID string) (url string, err error)
	Redeem(ctx context.Context, token string) (*jwt.LinkClaims, error)
}

type serviceImpl struct {
	jwt   jwt.JWT
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(jwtService jwt.JWT, redisCache cache.RedisCache, cfg *config.Config, otl otel.Otel) Service {
	return &serviceImpl{
		jwt:   jwtService,
		cache: redisCache,
		cfg:   cfg,
		otel:  otl,
	}
}

func (s *serviceImpl) issue(ctx context.Context, phone, bookingID, purpose, baseURL string) (url string, err error) {
	token, tokenID, err := s.jwt.GenerateLinkToken(phone, bookingID, purpose)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate link token")

		return "", fmt.Errorf("failed to generate link token: %w", err)
	}

	key := tokenKeyPrefix + ":" + tokenID

	ttlSeconds := s.cfg.JWT.LinkExpireMin * 60
	if err = s.cache.Save(ctx, key, phone, ttlSeconds); err != nil {
		log.Error().Err(err).Msg("failed to store link token")

		return "", fmt.Errorf("failed to store link token: %w", err)
	}

	return fmt.Sprintf("%s?token=%s", baseURL, token), nil
}

func (s *serviceImpl) IssueBookingLink(ctx context.Context, phone string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".links.IssueBookingLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.issue(ctx, phone, "", PurposeBooking, s.cfg.Hotel.BookingFormURL)
}

func (s *serviceImpl) IssuePaymentLink(ctx context.Context, phone, bookingID string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".links.IssuePaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.issue(ctx, phone, bookingID, PurposePayment, s.cfg.Hotel.PaymentURL)
}

// Redeem validates the signature, burns the single-use marker and returns the
// claims. A token that is expired, malformed or already spent yields an
// unauthorized failure.
func (s *serviceImpl) Redeem(ctx context.Context, token string) (claims *jwt.LinkClaims, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".links.Redeem")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err = s.jwt.ValidateLinkToken(token)
	if err != nil {
		return nil, failure.Unauthorized("link is invalid or has expired") //nolint:wrapcheck
	}

	key := tokenKeyPrefix + ":" + claims.ID

	var storedPhone string
	if err = s.cache.Get(ctx, key, &storedPhone); err != nil {
		return nil, failure.Unauthorized("link has already been used or has expired") //nolint:wrapcheck
	}

	if err = s.cache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Msg("failed to burn link token")

		return nil, fmt.Errorf("failed to burn link token: %w", err)
	}

	return claims, nil
}
