// Package jwtauth implementa auth.AuthVerifier con JWT HS256 firmados con un
// secreto compartido, y un Issuer para emitirlos desde la CLI.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petclinic/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrSecretMissing  = errors.New("jwt secret is empty")
	ErrSubjectMissing = errors.New("token has no subject")
)

// tokenClaims es lo que viaja en el JWT.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string
	// Issuer vacío desactiva la validación del claim iss.
	Issuer string
	// Leeway tolera desfasajes de reloj al validar exp/nbf.
	Leeway time.Duration
}

// Verifier valida tokens y mapea sub -> Claims.UserID.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}

	return &Verifier{secret: []byte(cfg.Secret), opts: opts}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if strings.TrimSpace(c.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, ErrSubjectMissing)
	}

	return auth.Claims{
		UserID:  c.Subject,
		Email:   c.Email,
		TokenID: c.ID,
	}, nil
}
