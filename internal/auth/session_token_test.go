package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-purposes"

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, 24*time.Hour)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.Issue("sess-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now().Add(23*time.Hour)))

	sessionID, err := service.Validate(token)

	require.NoError(t, err)
	assert.Equal(t, "sess-123", sessionID)
	assert.Equal(t, 24*time.Hour, service.Expiry())
}

func TestTokenService_Validate_Expired(t *testing.T) {
	service := newTestTokenService()
	service.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, _, err := service.Issue("sess-123")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.Validate(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	token, _, err := NewTokenService("another-secret-key-of-enough-length!!", time.Hour).Issue("sess-123")
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	tests := []string{"", "not-a-token", "a.b.c"}

	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			_, err := newTestTokenService().Validate(tt)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_Validate_RejectsNoneAlgorithm(t *testing.T) {
	claims := SessionClaims{
		SessionID: "sess-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_WrongIssuer(t *testing.T) {
	claims := SessionClaims{
		SessionID: "sess-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestTokenService().Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
