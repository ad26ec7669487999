package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func TestSessionFromHeader_NoHeader(t *testing.T) {
	s, err := SessionFromHeader(testSecret, "")
	require.NoError(t, err)
	assert.True(t, s.Anonymous)
	assert.Equal(t, RoleAnon, s.Role)
}

func TestSessionFromHeader_Valid(t *testing.T) {
	tok, err := GenerateToken(testSecret, "550e8400-e29b-41d4-a716-446655440000", "ops@equitie.com", time.Hour)
	require.NoError(t, err)

	s, err := SessionFromHeader(testSecret, "Bearer "+tok)
	require.NoError(t, err)
	assert.False(t, s.Anonymous)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", s.UserID)
	assert.Equal(t, "ops@equitie.com", s.Email)
	assert.Equal(t, "authenticated", s.Role)
	require.NotNil(t, s.ExpiresAt)
}

func TestSessionFromHeader_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("another-secret", "u1", "", time.Hour)
	require.NoError(t, err)
	s, err := SessionFromHeader(testSecret, "Bearer "+tok)
	assert.True(t, IsInvalidToken(err))
	assert.True(t, s.Anonymous)
}

func TestParseToken_Expired(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_NoSecret(t *testing.T) {
	_, err := ParseToken("", "x.y.z")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("abc"))
}

