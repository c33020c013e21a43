package service

import (
	"context"
	"net/http"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/identity"
	"github.com/khidma-app/khidma-admin/internal/logger"
)

// Sign-in rejection messages shown to the operator, keyed by the provider
// failure taxonomy. The UI is Arabic-first.
const (
	msgInvalidCredentials = "البريد الإلكتروني أو كلمة المرور غير صحيحة"
	msgUnconfirmedContact = "يرجى تأكيد البريد الإلكتروني أولاً"
	msgRateLimited        = "محاولات كثيرة جداً، يرجى المحاولة لاحقاً"
	msgLoginUnknown       = "حدث خطأ أثناء تسجيل الدخول"
	msgNoSession          = "فشل في تسجيل الدخول"
	msgRoleCheckFailed    = "خطأ في التحقق من صلاحيات المستخدم"
	msgAccountBanned      = "تم حظر هذا الحساب"
	msgNotAdmin           = "ليس لديك صلاحية للوصول إلى لوحة التحكم الإدارية"
)

// RoleStorage resolves the authoritative admin/ban flags for a signed-in
// identity.
type RoleStorage interface {
	AccessFlags(ctx context.Context, authUserId string) (domain.AccessFlags, error)
}

// Auth runs the full sign-in decision: verify credentials at the provider,
// then check the profile table before any session is handed out. The
// is_admin claim inside provider metadata is never consulted.
type Auth struct {
	provider identity.Provider
	roles    RoleStorage
}

func NewAuth(provider identity.Provider, roles RoleStorage) *Auth {
	return &Auth{provider: provider, roles: roles}
}

// Login verifies phone+password and admits only live admin profiles. On a
// ban or missing admin flag the freshly issued provider session is revoked
// before the error returns, so no half-open session survives.
func (a *Auth) Login(ctx context.Context, phone, password string) (identity.Session, error) {
	session, err := a.provider.SignInWithPassword(ctx, phone, password)
	if err != nil {
		reason := identity.ClassifyFailure(err)
		logger.Log.Warn("sign-in rejected by provider", "reason", string(reason), "error", err)
		return identity.Session{}, loginFailureError(reason)
	}
	if session.AccessToken == "" || session.User.Id == "" {
		return identity.Session{}, &errors.ErrorWithStatusCode{Message: msgNoSession, StatusCode: http.StatusUnauthorized}
	}

	flags, err := a.roles.AccessFlags(ctx, session.User.Id)
	if err != nil {
		logger.Log.Error("failed to resolve access flags", "auth_user_id", session.User.Id, "error", err)
		a.revoke(ctx, session.AccessToken)
		return identity.Session{}, &errors.ErrorWithStatusCode{Message: msgRoleCheckFailed, StatusCode: http.StatusInternalServerError}
	}
	if flags.Banned {
		a.revoke(ctx, session.AccessToken)
		return identity.Session{}, &errors.ErrorWithStatusCode{Message: msgAccountBanned, StatusCode: http.StatusForbidden}
	}
	if !flags.Admin {
		a.revoke(ctx, session.AccessToken)
		return identity.Session{}, &errors.ErrorWithStatusCode{Message: msgNotAdmin, StatusCode: http.StatusForbidden}
	}

	return session, nil
}

// Logout revokes the provider session. Revocation failures are logged and
// swallowed: the caller clears the cookies regardless, which is what ends
// the back-office session.
func (a *Auth) Logout(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	a.revoke(ctx, accessToken)
}

func (a *Auth) revoke(ctx context.Context, accessToken string) {
	if err := a.provider.SignOut(ctx, accessToken); err != nil {
		logger.Log.Warn("failed to revoke provider session", "error", err)
	}
}

func loginFailureError(reason identity.FailureReason) error {
	switch reason {
	case identity.FailureInvalidCredentials:
		return &errors.ErrorWithStatusCode{Message: msgInvalidCredentials, StatusCode: http.StatusUnauthorized}
	case identity.FailureUnconfirmedContact:
		return &errors.ErrorWithStatusCode{Message: msgUnconfirmedContact, StatusCode: http.StatusUnauthorized}
	case identity.FailureRateLimited:
		return &errors.ErrorWithStatusCode{Message: msgRateLimited, StatusCode: http.StatusTooManyRequests}
	default:
		return &errors.ErrorWithStatusCode{Message: msgLoginUnknown, StatusCode: http.StatusInternalServerError}
	}
}
