package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/response"
)

const tokenIssuer = "kanban-board-api"

// TokenClaims are the claims carried by access tokens
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token and its expiry
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues, validates, and revokes access tokens
type TokenService interface {
	Issue(userID uuid.UUID) (*IssuedToken, error)
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
	Revoke(ctx context.Context, token string) error
}

type tokenServiceImpl struct {
	secret    []byte
	expiry    time.Duration
	blacklist TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewTokenService creates an HS256 token service
func NewTokenService(secret string, expiry time.Duration, blacklist TokenBlacklist, logger *zap.Logger) TokenService {
	if blacklist == nil {
		blacklist = NewMemoryTokenBlacklist()
	}
	return &tokenServiceImpl{
		secret:    []byte(secret),
		expiry:    expiry,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *tokenServiceImpl) Issue(userID uuid.UUID) (*IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, response.NewInternalError("Failed to sign token", err)
	}
	return &IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *tokenServiceImpl) parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ValidateToken verifies signature, expiry, and revocation and returns the user id
func (s *tokenServiceImpl) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id claim: %w", err)
	}

	if claims.ID != "" {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail closed when the blacklist cannot be consulted
			s.logger.Warn("Token blacklist lookup failed", zap.Error(err))
			return uuid.Nil, fmt.Errorf("token blacklist unavailable: %w", err)
		}
		if revoked {
			return uuid.Nil, errors.New("token has been revoked")
		}
	}

	return userID, nil
}

// Revoke blacklists the token's id for the rest of its lifetime
func (s *tokenServiceImpl) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return response.NewUnauthorizedError("Invalid token", "")
	}
	if claims.ID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return response.NewInternalError("Failed to revoke token", err)
	}

	s.logger.Info("Token revoked", zap.String("user_id", claims.UserID), zap.String("jti", claims.ID))
	return nil
}
