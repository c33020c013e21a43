package handler

import (
	"net/http"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/middleware"
)

type credentials struct {
	Phone    string `validate:"required,e164" json:"phone"`
	Password string `validate:"required" json:"password"`
}

type loginUser struct {
	Id      string `json:"id"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
}

// Login verifies credentials and the admin role, then persists the token
// pair as cookies. Any denial leaves the browser without a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := loadAndValidateRequestBody(r, &creds); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	session, err := h.auth.Login(r.Context(), creds.Phone, creds.Password)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	h.cookies.Persist(w, domain.TokenPair{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: loginUser{
			Id:      session.User.Id,
			Phone:   session.User.Phone,
			Email:   session.User.Email,
			IsAdmin: true,
		},
	})
}

// LoginPage backs GET on the login path. A browser that already holds a
// granted session is bounced straight to the dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, decision := h.gate.Evaluate(r); decision == middleware.DecisionGranted {
		http.Redirect(w, r, middleware.AdminPrefix, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "تسجيل الدخول مطلوب"})
}

// Logout revokes the provider session and clears both cookies. Clearing
// happens even when revocation fails; the cookies are what keep the
// back-office session alive.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if pair, ok := h.cookies.Retrieve(r); ok {
		h.auth.Logout(r.Context(), pair.AccessToken)
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// Unauthorized is the landing page for banned and non-admin sign-ins. The
// message deliberately does not say which of the two applied.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusForbidden, map[string]string{
		"error": "ليس لديك صلاحية للوصول إلى لوحة التحكم الإدارية",
	})
}
