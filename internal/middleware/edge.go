package middleware

import (
	"net/http"
	"strings"

	"github.com/khidma-app/khidma-admin/internal/session"
)

const (
	AdminPrefix      = "/admin"
	LoginPath        = "/admin/login"
	UnauthorizedPath = "/admin/unauthorized"
)

// EdgeFilter turns away obviously-anonymous traffic before the access gate
// runs. It checks cookie presence only, never validity: a request it admits
// still has to pass the gate. The login and unauthorized pages are the only
// admin paths exempt from the check.
func EdgeFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.HasPrefix(path, AdminPrefix) &&
			!strings.HasPrefix(path, LoginPath) &&
			!strings.HasPrefix(path, UnauthorizedPath) {
			if !session.HasAccessToken(r) {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
