package middleware

import (
	"context"
	"net/http"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/identity"
	"github.com/khidma-app/khidma-admin/internal/logger"
	"github.com/khidma-app/khidma-admin/internal/middleware/metrics"
	"github.com/khidma-app/khidma-admin/internal/session"
)

// Key to store the authenticated principal in the request context
type key int

const PrincipalKey key = 0

// Principal is the identity and privilege record attached to granted
// requests.
type Principal struct {
	User  identity.User
	Pair  domain.TokenPair
	Flags domain.AccessFlags
}

// Decision is the terminal outcome of one gate evaluation. Every lookup
// failure degrades to the nearest denial; there is no partially-granted
// state.
type Decision int

const (
	DecisionGranted Decision = iota
	DecisionNoSession
	DecisionInvalidSession
	DecisionBanned
	DecisionNotAdmin
)

func (d Decision) String() string {
	switch d {
	case DecisionGranted:
		return "granted"
	case DecisionNoSession:
		return "no_session"
	case DecisionInvalidSession:
		return "invalid_session"
	case DecisionBanned:
		return "banned"
	case DecisionNotAdmin:
		return "not_admin"
	}
	return "unknown"
}

// TokenAuthority is the slice of the identity provider the gate needs.
type TokenAuthority interface {
	UserFromToken(ctx context.Context, accessToken string) (identity.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// RoleResolver reads the authoritative admin/ban flags for an identity.
type RoleResolver interface {
	AccessFlags(ctx context.Context, authUserId string) (domain.AccessFlags, error)
}

// Gate composes the session store, the token authority and the role
// resolver into the admin access policy.
type Gate struct {
	provider TokenAuthority
	roles    RoleResolver
	cookies  *session.Store
}

func NewGate(provider TokenAuthority, roles RoleResolver, cookies *session.Store) *Gate {
	return &Gate{provider: provider, roles: roles, cookies: cookies}
}

// Evaluate runs the gate state machine for one request:
// NoSession -> SessionPresent -> IdentityVerified -> RoleChecked.
// The profile-table lookup is authoritative in all cases; the is_admin
// claim inside the token's metadata is never consulted for a grant.
func (g *Gate) Evaluate(r *http.Request) (Principal, Decision) {
	pair, ok := g.cookies.Retrieve(r)
	if !ok {
		return Principal{}, DecisionNoSession
	}

	user, err := g.provider.UserFromToken(r.Context(), pair.AccessToken)
	if err != nil {
		// Fail closed: an unverifiable token is the same as no session.
		return Principal{}, DecisionInvalidSession
	}

	flags, err := g.roles.AccessFlags(r.Context(), user.Id)
	if err != nil {
		// Missing profile row or unreachable store both mean "not authorized".
		logger.Log.Error("role lookup failed", "user_id", user.Id, "error", err)
		return Principal{User: user, Pair: pair}, DecisionNotAdmin
	}

	if flags.Banned {
		return Principal{User: user, Pair: pair, Flags: flags}, DecisionBanned
	}
	if !flags.Admin {
		return Principal{User: user, Pair: pair, Flags: flags}, DecisionNotAdmin
	}
	return Principal{User: user, Pair: pair, Flags: flags}, DecisionGranted
}

// RequireAdmin returns middleware enforcing the gate on every request.
// Missing or invalid sessions redirect to login; authenticated users who
// are banned or lack privilege are signed out and sent to the unauthorized
// page, which deliberately does not distinguish the two reasons.
func (g *Gate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, decision := g.Evaluate(r)
			metrics.CountDecision(decision.String())
			switch decision {
			case DecisionGranted:
				ctx := context.WithValue(r.Context(), PrincipalKey, &principal)
				next.ServeHTTP(w, r.WithContext(ctx))
			case DecisionNoSession, DecisionInvalidSession:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			case DecisionBanned, DecisionNotAdmin:
				g.forceSignOut(w, r, principal)
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
			}
		})
	}
}

// forceSignOut revokes the provider session and clears both cookies so a
// denied session is never retained.
func (g *Gate) forceSignOut(w http.ResponseWriter, r *http.Request, principal Principal) {
	if principal.Pair.AccessToken != "" {
		if err := g.provider.SignOut(r.Context(), principal.Pair.AccessToken); err != nil {
			logger.Log.Warn("provider sign-out failed", "user_id", principal.User.Id, "error", err)
		}
	}
	g.cookies.Clear(w)
}

// GetPrincipal retrieves the granted principal from the request context.
func GetPrincipal(r *http.Request) *Principal {
	principal, ok := r.Context().Value(PrincipalKey).(*Principal)
	if !ok {
		return nil
	}
	return principal
}
