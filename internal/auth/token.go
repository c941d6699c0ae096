package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
	ErrMalformedToken   = errors.New("token is malformed")
)

type SessionClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 session tokens. It keeps no
// server-side state.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

func (s *TokenService) Issue(username string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(expiresAt(now)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// expiresAt rounds now+TokenTTL up to the whole second the exp claim can
// carry, so a token never expires before a full TokenTTL has passed.
func expiresAt(now time.Time) time.Time {
	exp := now.Add(TokenTTL)
	if truncated := exp.Truncate(time.Second); !truncated.Equal(exp) {
		return truncated.Add(time.Second)
	}
	return exp
}

// Verify checks the signature first and then that now is before the expiry.
func (s *TokenService) Verify(tokenString string, now time.Time) (SessionClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return SessionClaims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return SessionClaims{}, ErrMalformedToken
		default:
			return SessionClaims{}, ErrInvalidSignature
		}
	}

	return SessionClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
