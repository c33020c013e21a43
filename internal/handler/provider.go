package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/service"
	"github.com/khidma-app/khidma-admin/internal/validation"
)

type providerListItem struct {
	Id             string                `json:"id"`
	ServiceName    string                `json:"service_name"`
	Slug           *string               `json:"slug"`
	Status         domain.ProviderStatus `json:"status"`
	OwnerFirstName *string               `json:"owner_first_name"`
	OwnerLastName  *string               `json:"owner_last_name"`
	OwnerEmail     *string               `json:"owner_email"`
	CreatedAt      time.Time             `json:"created_at"`
}

type providerDetails struct {
	Id                string                 `json:"id"`
	UserId            string                 `json:"user_id"`
	ServiceName       string                 `json:"service_name"`
	Slug              *string                `json:"slug"`
	ServiceCategoryId string                 `json:"service_category_id"`
	GovernorateId     string                 `json:"governorate_id"`
	YearsOfExperience *int                   `json:"years_of_experience"`
	DeliveryMethod    *domain.DeliveryMethod `json:"service_delivery_method"`
	Description       *string                `json:"service_description"`
	Bio               *string                `json:"bio"`
	FacebookURL       *string                `json:"facebook_url"`
	InstagramURL      *string                `json:"instagram_url"`
	WhatsappURL       *string                `json:"whatsapp_url"`
	VideoURL          *string                `json:"video_url"`
	Keywords          *string                `json:"keywords"`
	Notes             *string                `json:"notes"`
	Status            domain.ProviderStatus  `json:"status"`
	LogoImage         *string                `json:"logo_image"`
	IdCardFrontImage  *string                `json:"id_card_front_image"`
	IdCardBackImage   *string                `json:"id_card_back_image"`
	CertificateImages *string                `json:"certificates_images"`
	DocumentList      *string                `json:"document_list"`
	OwnerFirstName    *string                `json:"owner_first_name"`
	OwnerLastName     *string                `json:"owner_last_name"`
	OwnerEmail        *string                `json:"owner_email"`
	OwnerPhone        *string                `json:"owner_phone"`
	OwnerAvatar       *string                `json:"owner_avatar"`
	GovernorateName   *string                `json:"governorate_name"`
	CategoryName      *string                `json:"category_name"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         *time.Time             `json:"updated_at,omitempty"`
}

func (h *Handler) GetServiceProviders(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageParams(r)
	status := r.URL.Query().Get("status")

	providers, total, err := h.providers.List(r.Context(), page, limit, status, search)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	data := make([]providerListItem, 0, len(providers))
	for _, p := range providers {
		data = append(data, providerListItem{
			Id:             p.Id,
			ServiceName:    p.ServiceName,
			Slug:           p.Slug,
			Status:         p.Status,
			OwnerFirstName: p.OwnerFirstName,
			OwnerLastName:  p.OwnerLastName,
			OwnerEmail:     p.OwnerEmail,
			CreatedAt:      p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data, Total: total})
}

func (h *Handler) GetServiceProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.providers.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, providerDetails{
		Id:                p.Id,
		UserId:            p.UserId,
		ServiceName:       p.ServiceName,
		Slug:              p.Slug,
		ServiceCategoryId: p.ServiceCategoryId,
		GovernorateId:     p.GovernorateId,
		YearsOfExperience: p.YearsOfExperience,
		DeliveryMethod:    p.DeliveryMethod,
		Description:       p.Description,
		Bio:               p.Bio,
		FacebookURL:       p.FacebookURL,
		InstagramURL:      p.InstagramURL,
		WhatsappURL:       p.WhatsappURL,
		VideoURL:          p.VideoURL,
		Keywords:          p.Keywords,
		Notes:             p.Notes,
		Status:            p.Status,
		LogoImage:         p.LogoImage,
		IdCardFrontImage:  p.IdCardFrontImage,
		IdCardBackImage:   p.IdCardBackImage,
		CertificateImages: p.CertificateImages,
		DocumentList:      p.DocumentList,
		OwnerFirstName:    p.OwnerFirstName,
		OwnerLastName:     p.OwnerLastName,
		OwnerEmail:        p.OwnerEmail,
		OwnerPhone:        p.OwnerPhone,
		OwnerAvatar:       p.OwnerAvatar,
		GovernorateName:   p.GovernorateName,
		CategoryName:      p.CategoryName,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	})
}

func formValuePtr(r *http.Request, field string) *string {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		return &v
	}
	return nil
}

func (h *Handler) CreateServiceProvider(w http.ResponseWriter, r *http.Request) {
	if err := validation.ParseMultipart(w, r, h.cfg.Public.MaxUploadBytes); err != nil {
		writeErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusRequestEntityTooLarge})
		return
	}

	params := service.CreateProviderParams{
		UserId:            r.FormValue("user_id"),
		ServiceName:       r.FormValue("service_name"),
		ServiceCategoryId: r.FormValue("service_category_id"),
		GovernorateId:     r.FormValue("governorate_id"),
		Description:       formValuePtr(r, "service_description"),
		Bio:               formValuePtr(r, "bio"),
		FacebookURL:       formValuePtr(r, "facebook_url"),
		InstagramURL:      formValuePtr(r, "instagram_url"),
		WhatsappURL:       formValuePtr(r, "whatsapp_url"),
		VideoURL:          formValuePtr(r, "video_url"),
		Keywords:          formValuePtr(r, "keywords"),
		Notes:             formValuePtr(r, "notes"),
		Status:            domain.ProviderStatus(r.FormValue("status")),
	}

	if v := r.FormValue("years_of_experience"); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			writeErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Invalid years of experience", StatusCode: http.StatusBadRequest})
			return
		}
		params.YearsOfExperience = &years
	}
	if v := r.FormValue("service_delivery_method"); v != "" {
		method := domain.DeliveryMethod(v)
		params.DeliveryMethod = &method
	}

	var err error
	if params.Logo, err = singleUpload(r, "logo"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if params.IdCardFront, err = singleUpload(r, "id_card_front"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if params.IdCardBack, err = singleUpload(r, "id_card_back"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if params.Certificates, err = multiUpload(r, "certificates"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if params.Documents, err = multiUpload(r, "documents"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	defer closeUploads(params)

	id, err := h.providers.Create(r.Context(), params)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func closeUploads(params service.CreateProviderParams) {
	for _, u := range []*validation.Upload{params.Logo, params.IdCardFront, params.IdCardBack} {
		if u != nil {
			u.Data.Close()
		}
	}
	for _, u := range params.Certificates {
		u.Data.Close()
	}
	for _, u := range params.Documents {
		u.Data.Close()
	}
}

func (h *Handler) UpdateServiceProvider(w http.ResponseWriter, r *http.Request) {
	if err := validation.ParseMultipart(w, r, h.cfg.Public.MaxUploadBytes); err != nil {
		writeErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusRequestEntityTooLarge})
		return
	}

	params := service.UpdateProviderParams{
		ServiceName: formValuePtr(r, "service_name"),
	}
	if v := r.FormValue("status"); v != "" {
		status := domain.ProviderStatus(v)
		params.Status = &status
	}

	var err error
	if params.Logo, err = singleUpload(r, "logo"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	if params.IdCardFront, err = singleUpload(r, "id_card_front"); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	defer func() {
		for _, u := range []*validation.Upload{params.Logo, params.IdCardFront} {
			if u != nil {
				u.Data.Close()
			}
		}
	}()

	if err := h.providers.Update(r.Context(), chi.URLParam(r, "id"), params); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type statusBody struct {
	Status domain.ProviderStatus `validate:"required" json:"status"`
}

func (h *Handler) UpdateServiceProviderStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := loadAndValidateRequestBody(r, &body); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.providers.SetStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteServiceProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.providers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
