package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.Identity{
		BaseURL:    serverURL,
		ServiceKey: "service-key",
		JwtSecret:  testSecret,
	})
}

func TestSignInWithPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+9647700000000", body["phone"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access",
			"refresh_token": "refresh",
			"user": map[string]interface{}{
				"id":    "auth-1",
				"phone": "+9647700000000",
				"email": "admin@example.com",
			},
		})
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).SignInWithPassword(context.Background(), "+9647700000000", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.Equal(t, "auth-1", session.User.Id)
}

func TestSignInWithPasswordRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SignInWithPassword(context.Background(), "+9647700000000", "wrong")
	require.Error(t, err)
	assert.Equal(t, FailureInvalidCredentials, ClassifyFailure(err))

	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.Equal(t, "Invalid login credentials", provErr.Message)
}

func TestSignInWithPasswordEmptySession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SignInWithPassword(context.Background(), "+9647700000000", "secret")
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
}

func TestSignOut(t *testing.T) {
	var gotBearer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		gotBearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server.URL).SignOut(context.Background(), "access"))
	assert.Equal(t, "Bearer access", gotBearer)
}

func TestAdminCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body["email"])
		assert.Equal(t, true, body["email_confirm"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "auth-new",
			"email": "new@example.com",
		})
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).AdminCreateUser(context.Background(), CreateUserParams{
		Email:        "new@example.com",
		Password:     "secret",
		EmailConfirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "auth-new", user.Id)
}

func TestAdminUpdateUserSendsOnlySetFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/users/auth-1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["email_confirm"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "phone_confirm")

		json.NewEncoder(w).Encode(map[string]interface{}{"id": "auth-1"})
	}))
	defer server.Close()

	confirm := true
	_, err := newTestClient(server.URL).AdminUpdateUser(context.Background(), "auth-1", UpdateUserParams{EmailConfirm: &confirm})
	require.NoError(t, err)
}

func TestAdminDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/users/auth-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server.URL).AdminDeleteUser(context.Background(), "auth-1"))
}

func TestParseProviderErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"gotrue msg field", 400, `{"msg":"Email not confirmed"}`, "Email not confirmed"},
		{"oauth error_description", 400, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "Invalid login credentials"},
		{"plain message field", 500, `{"message":"internal"}`, "internal"},
		{"non-json body", 502, "bad gateway", "bad gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestClient(server.URL).SignOut(context.Background(), "token")
			var provErr *Error
			require.True(t, errors.As(err, &provErr))
			assert.Equal(t, tt.status, provErr.StatusCode)
			assert.Equal(t, tt.expected, provErr.Message)
		})
	}
}

func TestUserFromTokenVerifiesLocally(t *testing.T) {
	// No server: verification must not hit the network.
	client := newTestClient("http://127.0.0.1:0")

	_, err := client.UserFromToken(context.Background(), "")
	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}
