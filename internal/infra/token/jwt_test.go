package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, exp, err := iss.Issue("ops", time.Now())
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := Parse("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	now := time.Now()
	_, exp, err := NewIssuer("secret", 0).Issue("ops", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(12*time.Hour).Unix(), exp.Unix())
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _, err := NewIssuer("secret", time.Hour).Issue("ops", time.Now())
	require.NoError(t, err)

	_, err = Parse("other", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	raw, _, err := NewIssuer("secret", time.Minute).Issue("ops", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = Parse("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":  "ops",
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Parse("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingRole(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = Parse("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
