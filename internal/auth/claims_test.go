package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestParseToken(t *testing.T) {
	token, err := GenerateToken("64f1b2c3d4e5f6a7b8c9d0e1", testSecret, true, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", claims.Subject)
	assert.True(t, claims.SecondFactor)
}

func TestParseTokenRejections(t *testing.T) {
	valid, err := GenerateToken("64f1b2c3d4e5f6a7b8c9d0e1", testSecret, false, time.Minute)
	require.NoError(t, err)

	expired, err := GenerateToken("64f1b2c3d4e5f6a7b8c9d0e1", testSecret, false, -time.Minute)
	require.NoError(t, err)

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Refresh: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "64f1b2c3d4e5f6a7b8c9d0e1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "64f1b2c3d4e5f6a7b8c9d0e1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		token         string
		expectedError error
	}{
		{name: "empty token", token: "", expectedError: ErrMissingToken},
		{name: "garbage token", token: "not-a-jwt", expectedError: ErrInvalidToken},
		{name: "expired token", token: expired, expectedError: ErrInvalidToken},
		{name: "refresh token", token: refresh, expectedError: ErrInvalidToken},
		{name: "missing subject", token: noSubject, expectedError: ErrInvalidToken},
		{name: "none algorithm", token: unsigned, expectedError: ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseToken(tc.token, testSecret)
			assert.ErrorIs(t, err, tc.expectedError)
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken(valid, "other-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSecondFactorDefaultsToFalse(t *testing.T) {
	// A token whose claim set never mentions the second factor must parse
	// as not attested.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "64f1b2c3d4e5f6a7b8c9d0e1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.False(t, claims.SecondFactor)
}
