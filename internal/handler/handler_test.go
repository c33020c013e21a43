package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/identity"
	"github.com/khidma-app/khidma-admin/internal/middleware"
	"github.com/khidma-app/khidma-admin/internal/service"
	"github.com/khidma-app/khidma-admin/internal/session"
	"github.com/stretchr/testify/require"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{PageSize: 10, MaxUploadBytes: 10 << 20}}
}

func testCookies() *session.Store {
	return session.New(false, time.Hour, 24*time.Hour)
}

type MockProvider struct {
	SignInWithPasswordFunc func(ctx context.Context, phone, password string) (identity.Session, error)
	UserFromTokenFunc      func(ctx context.Context, accessToken string) (identity.User, error)
	SignOutFunc            func(ctx context.Context, accessToken string) error
	SignOutCalls           []string
}

func (m *MockProvider) SignInWithPassword(ctx context.Context, phone, password string) (identity.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, phone, password)
	}
	return identity.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         identity.User{Id: "auth-1", Phone: phone},
	}, nil
}

func (m *MockProvider) UserFromToken(ctx context.Context, accessToken string) (identity.User, error) {
	if m.UserFromTokenFunc != nil {
		return m.UserFromTokenFunc(ctx, accessToken)
	}
	return identity.User{Id: "auth-1"}, nil
}

func (m *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	m.SignOutCalls = append(m.SignOutCalls, accessToken)
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, accessToken)
	}
	return nil
}

func (m *MockProvider) AdminCreateUser(ctx context.Context, params identity.CreateUserParams) (identity.User, error) {
	return identity.User{Id: "auth-new"}, nil
}

func (m *MockProvider) AdminGetUser(ctx context.Context, id string) (identity.User, error) {
	return identity.User{Id: id}, nil
}

func (m *MockProvider) AdminUpdateUser(ctx context.Context, id string, params identity.UpdateUserParams) (identity.User, error) {
	return identity.User{Id: id}, nil
}

func (m *MockProvider) AdminDeleteUser(ctx context.Context, id string) error {
	return nil
}

type MockRoleStorage struct {
	AccessFlagsFunc func(ctx context.Context, authUserId string) (domain.AccessFlags, error)
}

func (m *MockRoleStorage) AccessFlags(ctx context.Context, authUserId string) (domain.AccessFlags, error) {
	if m.AccessFlagsFunc != nil {
		return m.AccessFlagsFunc(ctx, authUserId)
	}
	return domain.AccessFlags{Admin: true}, nil
}

// newAuthHandler wires a Handler with just enough for the auth endpoints.
func newAuthHandler(provider *MockProvider, roles *MockRoleStorage) *Handler {
	cookies := testCookies()
	return &Handler{
		auth:    service.NewAuth(provider, roles),
		gate:    middleware.NewGate(provider, roles, cookies),
		cookies: cookies,
		cfg:     testConfig(),
	}
}

func sessionCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: session.AccessCookie, Value: "access-token"},
		{Name: session.RefreshCookie, Value: "refresh-token"},
	}
}

func doRequest(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
