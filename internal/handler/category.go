package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/validation"
)

type categoryResponse struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      *string    `json:"slug"`
	Icon      *string    `json:"icon"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toCategoryResponse(c domain.ServiceCategory) categoryResponse {
	return categoryResponse{
		Id:        c.Id,
		Name:      c.Name,
		Slug:      c.Slug,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *Handler) GetServiceCategories(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageParams(r)

	categories, total, err := h.categories.List(r.Context(), page, limit, search)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	data := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		data = append(data, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data, Total: total})
}

func (h *Handler) GetServiceCategoriesForSelect(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ForSelect(r.Context())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	options := make([]selectOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, selectOption{Id: c.Id, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, options)
}

// singleUpload pulls at most one validated image out of a multipart field.
func singleUpload(r *http.Request, field string) (*validation.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	uploads, err := validation.ValidateImages(headers[:1])
	if err != nil {
		return nil, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return uploads[0], nil
}

func multiUpload(r *http.Request, field string) ([]*validation.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	uploads, err := validation.ValidateImages(headers)
	if err != nil {
		return nil, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return uploads, nil
}

func (h *Handler) CreateServiceCategory(w http.ResponseWriter, r *http.Request) {
	if err := validation.ParseMultipart(w, r, h.cfg.Public.MaxUploadBytes); err != nil {
		writeErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusRequestEntityTooLarge})
		return
	}

	icon, err := singleUpload(r, "icon")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if icon != nil {
		defer icon.Data.Close()
	}

	id, err := h.categories.Create(r.Context(), r.FormValue("name"), icon)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) UpdateServiceCategory(w http.ResponseWriter, r *http.Request) {
	if err := validation.ParseMultipart(w, r, h.cfg.Public.MaxUploadBytes); err != nil {
		writeErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusRequestEntityTooLarge})
		return
	}

	icon, err := singleUpload(r, "icon")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if icon != nil {
		defer icon.Data.Close()
	}

	var currentIcon *string
	if v := strings.TrimSpace(r.FormValue("current_icon")); v != "" {
		currentIcon = &v
	}

	if err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), r.FormValue("name"), currentIcon, icon); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteServiceCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
