package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

const defaultTokenTTL = 24 * time.Hour

// Authenticator emite e valida os tokens de operadores. As contas de usuário vivem fora deste serviço.
//
//go:generate mockgen -source=service.go -destination=mocks/authenticating_mock.go -package=mocks
type Authenticator interface {
	IssueToken(claims domain.Claims, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	clock  utils.Clock
}

func NewService(secret string, clock utils.Clock) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &Service{
		secret: []byte(secret),
		clock:  clock,
	}, nil
}

// IssueToken assina um token para o operador. Tenant e papel são obrigatórios.
func (s *Service) IssueToken(claims domain.Claims, ttl time.Duration) (string, error) {
	if claims.TenantID == "" || claims.UserRoleID == 0 {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Tenant e papel são obrigatórios")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.clock.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.TenantID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claims inválidas")
	}

	return claims, nil
}
