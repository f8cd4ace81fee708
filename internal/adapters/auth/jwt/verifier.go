// Package jwt implementa o AuthVerifier sobre tokens HS256 emitidos pelo
// próprio serviço no login.
package jwt

import (
	"context"
	"errors"
	"time"

	"ubs-monitoring/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwtlib.RegisteredClaims
}

type Verifier struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewVerifier(signingKey, issuer string, ttl time.Duration) *Verifier {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Verifier{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Issue emite um token de acesso para o usuário autenticado.
func (v *Verifier) Issue(userID, username, role string) (string, error) {
	now := v.now()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(v.ttl)),
		},
	})
	return token.SignedString(v.signingKey)
}

// Verify implementa auth.AuthVerifier.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(tokenString, &claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return auth.Claims{}, ErrExpiredToken
		}
		return auth.Claims{}, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:   c.Subject,
		Username: c.Username,
		Role:     c.Role,
	}, nil
}
