package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/shared/timezone"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// LinkClaims is the payload of a short-lived link token. Link tokens are
// handed out in chat messages (booking form, payment page) and identify the
// guest phone the link was issued for. The JTI doubles as the single-use
// marker in redis.
type LinkClaims struct {
	Phone     string `json:"phone"`
	BookingID string `json:"booking_id,omitempty"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

type JWT interface {
	GenerateLinkToken(phone, bookingID, purpose string) (token, tokenID string, err error)
	ValidateLinkToken(tokenString string) (*LinkClaims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) GenerateLinkToken(phone, bookingID, purpose string) (string, string, error) {
	now := timezone.Now()
	expiresAt := now.Add(time.Duration(s.config.JWT.LinkExpireMin) * time.Minute)
	tokenID := uuid.New().String()

	claims := LinkClaims{
		Phone:     phone,
		BookingID: bookingID,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   phone,
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.config.JWT.LinkSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign link token: %w", err)
	}

	return signedToken, tokenID, nil
}

func (s *Service) ValidateLinkToken(tokenString string) (*LinkClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.LinkSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*LinkClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
