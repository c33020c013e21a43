package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/service"
)

type userResponse struct {
	Id               string     `json:"id"`
	AuthUserId       *string    `json:"auth_user_id"`
	Email            string     `json:"email"`
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	Phone            *string    `json:"phone"`
	Avatar           *string    `json:"avatar"`
	IsAdmin          bool       `json:"is_admin"`
	IsBanned         bool       `json:"is_banned"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	PhoneConfirmedAt *time.Time `json:"phone_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func toUserResponse(p domain.Profile) userResponse {
	return userResponse{
		Id:               p.Id,
		AuthUserId:       p.AuthUserId,
		Email:            p.Email,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Phone:            p.Phone,
		Avatar:           p.Avatar,
		IsAdmin:          p.Admin,
		IsBanned:         p.Banned,
		EmailConfirmedAt: p.EmailConfirmedAt,
		PhoneConfirmedAt: p.PhoneConfirmedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageParams(r)
	role := r.URL.Query().Get("role")

	users, total, err := h.users.List(r.Context(), page, limit, search, role)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	data := make([]userResponse, 0, len(users))
	for _, u := range users {
		data = append(data, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data, Total: total})
}

type userOption struct {
	Id        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *Handler) GetUsersForSelect(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ForSelect(r.Context())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	options := make([]userOption, 0, len(users))
	for _, u := range users {
		options = append(options, userOption{Id: u.Id, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName})
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(profile))
}

type createUserBody struct {
	Email     string  `validate:"required,email" json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsAdmin   bool    `json:"is_admin"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body createUserBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.users.Create(r.Context(), service.CreateUserParams{
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Admin:     body.IsAdmin,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type updateUserBody struct {
	Email     string  `validate:"required,email" json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var body updateUserBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	err := h.users.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateUserParams{
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Avatar:    body.Avatar,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type roleBody struct {
	IsAdmin bool `json:"is_admin"`
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var body roleBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.SetRole(r.Context(), chi.URLParam(r, "id"), body.IsAdmin); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type banBody struct {
	IsBanned bool `json:"is_banned"`
}

func (h *Handler) UpdateUserBan(w http.ResponseWriter, r *http.Request) {
	var body banBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.SetBan(r.Context(), chi.URLParam(r, "id"), body.IsBanned); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type passwordBody struct {
	Password string `validate:"required,min=6" json:"password"`
}

func (h *Handler) SetUserPassword(w http.ResponseWriter, r *http.Request) {
	var body passwordBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.SetPassword(r.Context(), chi.URLParam(r, "id"), body.Password); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ConfirmUserEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.users.ConfirmEmail(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ConfirmUserPhone(w http.ResponseWriter, r *http.Request) {
	if err := h.users.ConfirmPhone(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
