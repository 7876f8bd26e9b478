package jwtauth

import (
	"context"
	"testing"
	"time"

	"petclinic/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	cfg := Config{Secret: "s3cret", Issuer: "petclinic"}

	iss, err := NewIssuer(cfg, time.Minute)
	require.NoError(t, err)
	ver, err := NewVerifier(cfg)
	require.NoError(t, err)

	token, exp, err := iss.Issue("vet-admin", "admin@petclinic.local")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := ver.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "vet-admin", claims.UserID)
	assert.Equal(t, "admin@petclinic.local", claims.Email)
	_, err = uuid.Parse(claims.TokenID)
	assert.NoError(t, err)
}

func TestVerify_Rejects(t *testing.T) {
	ver, err := NewVerifier(Config{Secret: "s3cret", Issuer: "petclinic"})
	require.NoError(t, err)
	ctx := context.Background()

	otherSecret, _ := NewIssuer(Config{Secret: "other", Issuer: "petclinic"}, time.Minute)
	otherIssuer, _ := NewIssuer(Config{Secret: "s3cret", Issuer: "someone-else"}, time.Minute)
	expired, _ := NewIssuer(Config{Secret: "s3cret", Issuer: "petclinic"}, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	for name, iss := range map[string]*Issuer{
		"wrong secret": otherSecret,
		"wrong issuer": otherIssuer,
		"expired":      expired,
	} {
		token, _, err := iss.Issue("u", "")
		require.NoError(t, err, name)

		_, err = ver.Verify(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}

	_, err = ver.Verify(ctx, "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = ver.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	ver, err := NewVerifier(Config{Secret: "s3cret"})
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   "u",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ver.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestConstructorsRequireSecret(t *testing.T) {
	_, err := NewVerifier(Config{})
	assert.ErrorIs(t, err, ErrSecretMissing)

	_, err = NewIssuer(Config{Secret: " "}, 0)
	assert.ErrorIs(t, err, ErrSecretMissing)

	_, _, err = (&Issuer{secret: []byte("x"), now: time.Now, ttl: time.Minute}).Issue(" ", "")
	assert.ErrorIs(t, err, ErrSubjectMissing)
}
