package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/identity"
	"github.com/khidma-app/khidma-admin/internal/logger"
)

const msgAlreadyLinked = "هذا المستخدم مرتبط بالفعل بحساب مصادقة"

type UserStorage interface {
	Users(ctx context.Context, page, limit int, search, role string) ([]domain.Profile, int, error)
	UsersForSelect(ctx context.Context) ([]domain.Profile, error)
	Profile(ctx context.Context, id string) (domain.Profile, error)
	CreateProfile(ctx context.Context, p domain.Profile) (string, error)
	UpdateProfile(ctx context.Context, id string, p domain.Profile) error
	SetUserRole(ctx context.Context, id string, admin bool) error
	SetUserBan(ctx context.Context, id string, banned bool) error
	LinkAuthUser(ctx context.Context, id, authUserId string) error
	SoftDeleteUser(ctx context.Context, id string) error
	RevertSoftDeleteUser(ctx context.Context, id string) error
}

// CreateUserParams creates a profile row and, when a password is given, a
// matching identity provider account.
type CreateUserParams struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Phone     *string
	Admin     bool
}

type UpdateUserParams struct {
	Email     string
	FirstName *string
	LastName  *string
	Phone     *string
	Avatar    *string
}

// User manages profile rows and keeps them consistent with the identity
// provider. The profile table owns the admin and ban flags; the provider
// owns credentials and contact confirmation.
type User struct {
	storage  UserStorage
	provider identity.Provider
	cfg      *config.Public
}

func NewUser(storage UserStorage, provider identity.Provider, cfg *config.Public) *User {
	return &User{storage: storage, provider: provider, cfg: cfg}
}

// List enriches each linked profile with confirmation timestamps from the
// provider when available. Provider lookups are best effort; a dead
// provider must not blank the user list.
func (s *User) List(ctx context.Context, page, limit int, search, role string) ([]domain.Profile, int, error) {
	page, limit = normalizePage(page, limit, s.cfg.PageSize)
	if role != "admin" && role != "public" {
		role = ""
	}
	return s.storage.Users(ctx, page, limit, strings.TrimSpace(search), role)
}

func (s *User) ForSelect(ctx context.Context) ([]domain.Profile, error) {
	return s.storage.UsersForSelect(ctx)
}

// Details returns one profile, with provider confirmation timestamps
// merged in for linked accounts.
func (s *User) Details(ctx context.Context, id string) (domain.Profile, error) {
	profile, err := s.storage.Profile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile.AuthUserId != nil {
		authUser, err := s.provider.AdminGetUser(ctx, *profile.AuthUserId)
		if err != nil {
			logger.Log.Warn("failed to fetch provider account", "auth_user_id", *profile.AuthUserId, "error", err)
		} else {
			profile.EmailConfirmedAt = authUser.EmailConfirmedAt
			profile.PhoneConfirmedAt = authUser.PhoneConfirmedAt
		}
	}
	return profile, nil
}

// Create makes the provider account first, then the profile row. If the
// row insert fails the provider account is deleted so no orphan can sign
// in without a profile.
func (s *User) Create(ctx context.Context, params CreateUserParams) (string, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Email is required", StatusCode: http.StatusBadRequest}
	}

	profile := domain.Profile{
		Email:     email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Admin:     params.Admin,
	}

	if params.Password != "" {
		phone := ""
		if params.Phone != nil {
			phone = *params.Phone
		}
		authUser, err := s.provider.AdminCreateUser(ctx, identity.CreateUserParams{
			Email:        email,
			Phone:        phone,
			Password:     params.Password,
			EmailConfirm: true,
			Metadata:     map[string]interface{}{"is_admin": params.Admin},
		})
		if err != nil {
			return "", err
		}
		profile.AuthUserId = &authUser.Id

		id, err := s.storage.CreateProfile(ctx, profile)
		if err != nil {
			if derr := s.provider.AdminDeleteUser(ctx, authUser.Id); derr != nil {
				logger.Log.Error("failed to roll back provider account", "auth_user_id", authUser.Id, "error", derr)
			}
			return "", err
		}
		return id, nil
	}

	return s.storage.CreateProfile(ctx, profile)
}

func (s *User) Update(ctx context.Context, id string, params UpdateUserParams) error {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return &errors.ErrorWithStatusCode{Message: "Email is required", StatusCode: http.StatusBadRequest}
	}
	return s.storage.UpdateProfile(ctx, id, domain.Profile{
		Email:     email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Avatar:    params.Avatar,
	})
}

// SetRole updates the authoritative flag in the profile table, then
// mirrors it into provider metadata so client apps can render the badge.
// The mirror is cosmetic and best effort; the gate never reads it.
func (s *User) SetRole(ctx context.Context, id string, admin bool) error {
	profile, err := s.storage.Profile(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.SetUserRole(ctx, id, admin); err != nil {
		return err
	}

	if profile.AuthUserId != nil {
		authUser, err := s.provider.AdminGetUser(ctx, *profile.AuthUserId)
		if err != nil {
			logger.Log.Warn("failed to fetch provider account for role mirror", "auth_user_id", *profile.AuthUserId, "error", err)
			return nil
		}
		metadata := authUser.Metadata
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		metadata["is_admin"] = admin
		if _, err := s.provider.AdminUpdateUser(ctx, *profile.AuthUserId, identity.UpdateUserParams{Metadata: metadata}); err != nil {
			logger.Log.Warn("failed to mirror role into provider metadata", "auth_user_id", *profile.AuthUserId, "error", err)
		}
	}
	return nil
}

// SetBan flips the ban flag. A banned admin is ejected on their next
// request through the gate.
func (s *User) SetBan(ctx context.Context, id string, banned bool) error {
	return s.storage.SetUserBan(ctx, id, banned)
}

// SetPassword gives a profile-only user a provider account so they can
// sign in. Profiles already linked to an account are rejected.
func (s *User) SetPassword(ctx context.Context, id, password string) error {
	if password == "" {
		return &errors.ErrorWithStatusCode{Message: "Password is required", StatusCode: http.StatusBadRequest}
	}
	profile, err := s.storage.Profile(ctx, id)
	if err != nil {
		return err
	}
	if profile.AuthUserId != nil {
		return &errors.ErrorWithStatusCode{Message: msgAlreadyLinked, StatusCode: http.StatusBadRequest}
	}

	phone := ""
	if profile.Phone != nil {
		phone = *profile.Phone
	}
	authUser, err := s.provider.AdminCreateUser(ctx, identity.CreateUserParams{
		Email:        profile.Email,
		Phone:        phone,
		Password:     password,
		EmailConfirm: true,
		Metadata:     map[string]interface{}{"is_admin": profile.Admin},
	})
	if err != nil {
		return err
	}

	if err := s.storage.LinkAuthUser(ctx, id, authUser.Id); err != nil {
		if derr := s.provider.AdminDeleteUser(ctx, authUser.Id); derr != nil {
			logger.Log.Error("failed to roll back provider account", "auth_user_id", authUser.Id, "error", derr)
		}
		return err
	}
	return nil
}

// ConfirmEmail marks the linked provider account's email as confirmed.
func (s *User) ConfirmEmail(ctx context.Context, id string) error {
	return s.confirmContact(ctx, id, true)
}

// ConfirmPhone marks the linked provider account's phone as confirmed.
func (s *User) ConfirmPhone(ctx context.Context, id string) error {
	return s.confirmContact(ctx, id, false)
}

func (s *User) confirmContact(ctx context.Context, id string, email bool) error {
	profile, err := s.storage.Profile(ctx, id)
	if err != nil {
		return err
	}
	if profile.AuthUserId == nil {
		return &errors.ErrorWithStatusCode{Message: "User has no auth account", StatusCode: http.StatusBadRequest}
	}

	confirm := true
	params := identity.UpdateUserParams{}
	if email {
		params.EmailConfirm = &confirm
	} else {
		params.PhoneConfirm = &confirm
	}
	_, err = s.provider.AdminUpdateUser(ctx, *profile.AuthUserId, params)
	return err
}

// Delete soft-deletes the profile, then removes the provider account. If
// the provider deletion fails the soft delete is reverted so the two
// stores stay consistent.
func (s *User) Delete(ctx context.Context, id string) error {
	profile, err := s.storage.Profile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.SoftDeleteUser(ctx, id); err != nil {
		return err
	}

	if profile.AuthUserId != nil {
		if err := s.provider.AdminDeleteUser(ctx, *profile.AuthUserId); err != nil {
			if rerr := s.storage.RevertSoftDeleteUser(ctx, id); rerr != nil {
				logger.Log.Error("failed to revert user soft delete", "user_id", id, "error", rerr)
			}
			return err
		}
	}
	return nil
}
