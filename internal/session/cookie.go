// Package session persists the provider token pair across requests as two
// cookies with independent lifetimes.
package session

import (
	"net/http"
	"time"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

const (
	AccessCookie  = "kh-access-token"
	RefreshCookie = "kh-refresh-token"
)

type Store struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(secure bool, accessTTL, refreshTTL time.Duration) *Store {
	return &Store{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Persist writes both tokens. The cookies are HttpOnly and SameSite=Lax;
// Secure is set outside development so tokens never travel in clear.
func (s *Store) Persist(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, s.cookie(AccessCookie, pair.AccessToken, int(s.accessTTL.Seconds())))
	http.SetCookie(w, s.cookie(RefreshCookie, pair.RefreshToken, int(s.refreshTTL.Seconds())))
}

// Retrieve reads the token pair. The read is both-or-nothing: a lone cookie
// is treated as no session at all, matching the gate's verification needs.
func (s *Store) Retrieve(r *http.Request) (domain.TokenPair, bool) {
	access, err := r.Cookie(AccessCookie)
	if err != nil || access.Value == "" {
		return domain.TokenPair{}, false
	}
	refresh, err := r.Cookie(RefreshCookie)
	if err != nil || refresh.Value == "" {
		return domain.TokenPair{}, false
	}
	return domain.TokenPair{AccessToken: access.Value, RefreshToken: refresh.Value}, true
}

// HasAccessToken reports cookie presence only. The edge filter uses this to
// turn away anonymous traffic cheaply; it says nothing about validity.
func HasAccessToken(r *http.Request) bool {
	c, err := r.Cookie(AccessCookie)
	return err == nil && c.Value != ""
}

// Clear removes both cookies unconditionally. Safe to call repeatedly.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(AccessCookie, "", -1))
	http.SetCookie(w, s.cookie(RefreshCookie, "", -1))
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
