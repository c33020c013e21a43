package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesFromRecorder(t *testing.T, w *httptest.ResponseRecorder) map[string]*http.Cookie {
	t.Helper()
	result := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		result[c.Name] = c
	}
	return result
}

func TestPersistAndRetrieve(t *testing.T) {
	store := New(false, time.Hour, 24*time.Hour)

	w := httptest.NewRecorder()
	store.Persist(w, domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	pair, ok := store.Retrieve(r)
	require.True(t, ok)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
}

func TestPersistCookieAttributes(t *testing.T) {
	store := New(true, time.Hour, 24*time.Hour)

	w := httptest.NewRecorder()
	store.Persist(w, domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	cookies := cookiesFromRecorder(t, w)
	require.Contains(t, cookies, AccessCookie)
	require.Contains(t, cookies, RefreshCookie)

	access := cookies[AccessCookie]
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, 3600, access.MaxAge)

	refresh := cookies[RefreshCookie]
	assert.Equal(t, 86400, refresh.MaxAge)
}

func TestRetrieveIsBothOrNothing(t *testing.T) {
	store := New(false, time.Hour, 24*time.Hour)

	tests := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no cookies", nil},
		{"access only", []*http.Cookie{{Name: AccessCookie, Value: "access"}}},
		{"refresh only", []*http.Cookie{{Name: RefreshCookie, Value: "refresh"}}},
		{"empty access value", []*http.Cookie{{Name: AccessCookie, Value: ""}, {Name: RefreshCookie, Value: "refresh"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			for _, c := range tt.cookies {
				r.AddCookie(c)
			}
			_, ok := store.Retrieve(r)
			assert.False(t, ok)
		})
	}
}

func TestHasAccessToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	assert.False(t, HasAccessToken(r))

	r.AddCookie(&http.Cookie{Name: AccessCookie, Value: "anything"})
	assert.True(t, HasAccessToken(r))
}

func TestClearExpiresBothCookies(t *testing.T) {
	store := New(false, time.Hour, 24*time.Hour)

	w := httptest.NewRecorder()
	store.Clear(w)

	cookies := cookiesFromRecorder(t, w)
	require.Contains(t, cookies, AccessCookie)
	require.Contains(t, cookies, RefreshCookie)
	assert.Equal(t, -1, cookies[AccessCookie].MaxAge)
	assert.Equal(t, "", cookies[AccessCookie].Value)
	assert.Equal(t, -1, cookies[RefreshCookie].MaxAge)

	// Repeated clears are harmless.
	store.Clear(w)
}
