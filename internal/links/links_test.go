package links_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"concierge/config"
	"concierge/infras/jwt"
	jwtMocks "concierge/infras/jwt/mocks"
	"concierge/infras/otel/mocks"
	"concierge/internal/links"
	"concierge/shared/failure"
	cacheMocks "concierge/shared/cache/mocks"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.LinkExpireMin = 15
	cfg.Hotel.BookingFormURL = "https://hotel.example/book"
	cfg.Hotel.PaymentURL = "https://hotel.example/pay"

	return cfg
}

func TestLinks_IssueBookingLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := links.New(mockJWT, mockCache, newConfig(), mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantURL   string
		wantErr   bool
	}{
		{
			name: "token is generated and parked with the configured ttl",
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateLinkToken("628123", "", links.PurposeBooking).
					Return("signed-token", "jti-1", nil)

				mockCache.EXPECT().
					Save(gomock.Any(), "link_token:jti-1", "628123", 15*60).
					Return(nil)
			},
			wantURL: "https://hotel.example/book?token=signed-token",
		},
		{
			name: "token generation failure propagates",
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateLinkToken("628123", "", links.PurposeBooking).
					Return("", "", errors.New("sign error"))
			},
			wantErr: true,
		},
		{
			name: "cache failure propagates",
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateLinkToken("628123", "", links.PurposeBooking).
					Return("signed-token", "jti-1", nil)

				mockCache.EXPECT().
					Save(gomock.Any(), "link_token:jti-1", "628123", 15*60).
					Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			url, err := svc.IssueBookingLink(context.Background(), "628123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
		})
	}
}

func TestLinks_IssuePaymentLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := links.New(mockJWT, mockCache, newConfig(), mocks.NewOtel())

	mockJWT.EXPECT().
		GenerateLinkToken("628123", "bk-1", links.PurposePayment).
		Return("pay-token", "jti-2", nil)

	mockCache.EXPECT().
		Save(gomock.Any(), "link_token:jti-2", "628123", 15*60).
		Return(nil)

	url, err := svc.IssuePaymentLink(context.Background(), "628123", "bk-1")

	assert.NoError(t, err)
	assert.Equal(t, "https://hotel.example/pay?token=pay-token", url)
}

func TestLinks_Redeem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := links.New(mockJWT, mockCache, newConfig(), mocks.NewOtel())

	validClaims := &jwt.LinkClaims{
		Phone:   "628123",
		Purpose: links.PurposeBooking,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID: "jti-1",
		},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "valid token is burned and claims returned",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateLinkToken("signed-token").
					Return(validClaims, nil)

				mockCache.EXPECT().
					Get(gomock.Any(), "link_token:jti-1", gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), "link_token:jti-1").
					Return(nil)
			},
		},
		{
			name: "invalid signature is unauthorized",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateLinkToken("signed-token").
					Return(nil, errors.New("token is expired"))
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "already spent token is unauthorized",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateLinkToken("signed-token").
					Return(validClaims, nil)

				mockCache.EXPECT().
					Get(gomock.Any(), "link_token:jti-1", gomock.Any()).
					Return(errors.New("cache: nil"))
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "burn failure propagates as internal error",
			setupMock: func() {
				mockJWT.EXPECT().
					ValidateLinkToken("signed-token").
					Return(validClaims, nil)

				mockCache.EXPECT().
					Get(gomock.Any(), "link_token:jti-1", gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), "link_token:jti-1").
					Return(errors.New("redis down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			claims, err := svc.Redeem(context.Background(), "signed-token")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "628123", claims.Phone)
			assert.Equal(t, "jti-1", claims.ID)
		})
	}
}
