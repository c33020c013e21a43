// Package identity is the boundary to the external auth service that owns
// credentials and issues token pairs. Nothing in this repo stores or
// compares secrets; the provider does.
package identity

import (
	"context"
	"time"
)

// User is the principal the provider resolved for a token or admin lookup.
// Metadata is the provider-side user_metadata blob; claims inside it are
// attacker-influenceable in some provider configurations and must never be
// used to grant access (the profile table is authoritative).
type User struct {
	Id               string
	Phone            string
	Email            string
	EmailConfirmedAt *time.Time
	PhoneConfirmedAt *time.Time
	Metadata         map[string]interface{}
}

// AdminClaim reads the optimistic is_admin flag from user metadata.
func (u User) AdminClaim() bool {
	v, ok := u.Metadata["is_admin"].(bool)
	return ok && v
}

// Session is the provider-issued token pair plus the signed-in user.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

type CreateUserParams struct {
	Email        string
	Phone        string
	Password     string
	EmailConfirm bool
	Metadata     map[string]interface{}
}

// UpdateUserParams patches a provider account. Nil fields are left as-is.
type UpdateUserParams struct {
	Password     *string
	EmailConfirm *bool
	PhoneConfirm *bool
	Metadata     map[string]interface{}
}

// Provider is the full surface this service consumes from the auth service.
// SignIn/UserFromToken/SignOut serve the access gate; the Admin* methods
// serve user management only.
type Provider interface {
	SignInWithPassword(ctx context.Context, phone, password string) (Session, error)
	UserFromToken(ctx context.Context, accessToken string) (User, error)
	SignOut(ctx context.Context, accessToken string) error

	AdminCreateUser(ctx context.Context, params CreateUserParams) (User, error)
	AdminGetUser(ctx context.Context, id string) (User, error)
	AdminUpdateUser(ctx context.Context, id string, params UpdateUserParams) (User, error)
	AdminDeleteUser(ctx context.Context, id string) error
}
