package identity

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecodeAccessToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   "auth-1",
		"phone": "+9647700000000",
		"email": "admin@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"is_admin": true,
		},
	}

	user, err := decodeAccessToken(testSecret, signToken(t, testSecret, claims))
	require.NoError(t, err)
	assert.Equal(t, "auth-1", user.Id)
	assert.Equal(t, "+9647700000000", user.Phone)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.True(t, user.AdminClaim())
}

func TestDecodeAccessTokenWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{"sub": "auth-1", "exp": time.Now().Add(time.Hour).Unix()}

	_, err := decodeAccessToken("other_secret", signToken(t, testSecret, claims))
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}

func TestDecodeAccessTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{"sub": "auth-1", "exp": time.Now().Add(-time.Hour).Unix()}

	_, err := decodeAccessToken(testSecret, signToken(t, testSecret, claims))
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}

func TestDecodeAccessTokenGarbage(t *testing.T) {
	_, err := decodeAccessToken(testSecret, "not.a.token")
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}

func TestDecodeAccessTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}

	_, err := decodeAccessToken(testSecret, signToken(t, testSecret, claims))
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}

func TestAdminClaim(t *testing.T) {
	assert.False(t, User{}.AdminClaim())
	assert.False(t, User{Metadata: map[string]interface{}{"is_admin": "yes"}}.AdminClaim())
	assert.False(t, User{Metadata: map[string]interface{}{"is_admin": false}}.AdminClaim())
	assert.True(t, User{Metadata: map[string]interface{}{"is_admin": true}}.AdminClaim())
}
