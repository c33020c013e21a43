package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

type governorateBody struct {
	Name string  `validate:"required" json:"name"`
	Code *string `json:"code"`
}

type governorateResponse struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Code      *string    `json:"code"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toGovernorateResponse(g domain.Governorate) governorateResponse {
	return governorateResponse{
		Id:        g.Id,
		Name:      g.Name,
		Code:      g.Code,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (h *Handler) GetGovernorates(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageParams(r)

	governorates, total, err := h.governorates.List(r.Context(), page, limit, search)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	data := make([]governorateResponse, 0, len(governorates))
	for _, g := range governorates {
		data = append(data, toGovernorateResponse(g))
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data, Total: total})
}

type selectOption struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) GetGovernoratesForSelect(w http.ResponseWriter, r *http.Request) {
	governorates, err := h.governorates.ForSelect(r.Context())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	options := make([]selectOption, 0, len(governorates))
	for _, g := range governorates {
		options = append(options, selectOption{Id: g.Id, Name: g.Name})
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *Handler) CreateGovernorate(w http.ResponseWriter, r *http.Request) {
	var body governorateBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.governorates.Create(r.Context(), body.Name, body.Code)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) UpdateGovernorate(w http.ResponseWriter, r *http.Request) {
	var body governorateBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.governorates.Update(r.Context(), chi.URLParam(r, "id"), body.Name, body.Code); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteGovernorate(w http.ResponseWriter, r *http.Request) {
	if err := h.governorates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
