package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/logger"
	"github.com/khidma-app/khidma-admin/internal/storage/pg"
	"github.com/khidma-app/khidma-admin/internal/validation"
)

const (
	providerLogoFolder        = "service_providers/logos"
	providerIdCardFolder      = "service_providers/id_cards"
	providerCertificateFolder = "service_providers/certificates"
	providerDocumentFolder    = "service_providers/documents"
)

type ProviderStorage interface {
	ServiceProviders(ctx context.Context, page, limit int, status, search string) ([]domain.ServiceProvider, int, error)
	ServiceProvider(ctx context.Context, id string) (domain.ServiceProvider, error)
	CreateServiceProvider(ctx context.Context, p domain.ServiceProvider) (string, error)
	UpdateServiceProvider(ctx context.Context, id string, patch pg.ServiceProviderPatch) error
	UpdateServiceProviderStatus(ctx context.Context, id string, status domain.ProviderStatus) error
	DeleteServiceProvider(ctx context.Context, id string) error
}

// CreateProviderParams carries the application form. Free-text fields are
// sanitized before storage; uploads were already validated as images.
type CreateProviderParams struct {
	UserId            string
	ServiceName       string
	ServiceCategoryId string
	GovernorateId     string
	YearsOfExperience *int
	DeliveryMethod    *domain.DeliveryMethod
	Description       *string
	Bio               *string
	FacebookURL       *string
	InstagramURL      *string
	WhatsappURL       *string
	VideoURL          *string
	Keywords          *string
	Notes             *string
	Status            domain.ProviderStatus

	Logo         *validation.Upload
	IdCardFront  *validation.Upload
	IdCardBack   *validation.Upload
	Certificates []*validation.Upload
	Documents    []*validation.Upload
}

// UpdateProviderParams is the admin-editable subset of an application.
type UpdateProviderParams struct {
	ServiceName *string
	Status      *domain.ProviderStatus
	Logo        *validation.Upload
	IdCardFront *validation.Upload
}

type Provider struct {
	storage   ProviderStorage
	media     MediaStorage
	cfg       *config.Public
	sanitizer *bluemonday.Policy
}

func NewProvider(storage ProviderStorage, media MediaStorage, cfg *config.Public) *Provider {
	return &Provider{
		storage:   storage,
		media:     media,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *Provider) List(ctx context.Context, page, limit int, status, search string) ([]domain.ServiceProvider, int, error) {
	page, limit = normalizePage(page, limit, s.cfg.PageSize)
	if status != "" && !domain.ProviderStatus(status).Valid() {
		return nil, 0, &errors.ErrorWithStatusCode{Message: "Invalid status filter", StatusCode: http.StatusBadRequest}
	}
	return s.storage.ServiceProviders(ctx, page, limit, status, strings.TrimSpace(search))
}

func (s *Provider) Details(ctx context.Context, id string) (domain.ServiceProvider, error) {
	return s.storage.ServiceProvider(ctx, id)
}

func (s *Provider) Create(ctx context.Context, params CreateProviderParams) (string, error) {
	if strings.TrimSpace(params.ServiceName) == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Service name is required", StatusCode: http.StatusBadRequest}
	}
	if params.UserId == "" || params.ServiceCategoryId == "" || params.GovernorateId == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Owner, category and governorate are required", StatusCode: http.StatusBadRequest}
	}
	status := params.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid status", StatusCode: http.StatusBadRequest}
	}
	if params.DeliveryMethod != nil && !params.DeliveryMethod.Valid() {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid delivery method", StatusCode: http.StatusBadRequest}
	}

	serviceName := strings.TrimSpace(params.ServiceName)
	slug := GenerateSlug(serviceName)

	provider := domain.ServiceProvider{
		UserId:            params.UserId,
		ServiceName:       serviceName,
		Slug:              &slug,
		ServiceCategoryId: params.ServiceCategoryId,
		GovernorateId:     params.GovernorateId,
		YearsOfExperience: params.YearsOfExperience,
		DeliveryMethod:    params.DeliveryMethod,
		Description:       s.sanitize(params.Description),
		Bio:               s.sanitize(params.Bio),
		FacebookURL:       params.FacebookURL,
		InstagramURL:      params.InstagramURL,
		WhatsappURL:       params.WhatsappURL,
		VideoURL:          params.VideoURL,
		Keywords:          params.Keywords,
		Notes:             s.sanitize(params.Notes),
		Status:            status,
	}

	var saved []string
	cleanup := func() {
		for _, path := range saved {
			if err := s.media.Delete(path); err != nil {
				logger.Log.Warn("failed to clean up orphaned upload", "path", path, "error", err)
			}
		}
	}
	save := func(upload *validation.Upload, folder string) (*string, error) {
		if upload == nil {
			return nil, nil
		}
		path, err := s.media.Save(upload.Data, folder, upload.Extension)
		if err != nil {
			return nil, err
		}
		saved = append(saved, path)
		return &path, nil
	}
	saveAll := func(uploads []*validation.Upload, folder string) (*string, error) {
		if len(uploads) == 0 {
			return nil, nil
		}
		var paths []string
		for _, upload := range uploads {
			path, err := s.media.Save(upload.Data, folder, upload.Extension)
			if err != nil {
				return nil, err
			}
			saved = append(saved, path)
			paths = append(paths, path)
		}
		joined := strings.Join(paths, ", ")
		return &joined, nil
	}

	var err error
	if provider.LogoImage, err = save(params.Logo, providerLogoFolder); err != nil {
		cleanup()
		return "", err
	}
	if provider.IdCardFrontImage, err = save(params.IdCardFront, providerIdCardFolder); err != nil {
		cleanup()
		return "", err
	}
	if provider.IdCardBackImage, err = save(params.IdCardBack, providerIdCardFolder); err != nil {
		cleanup()
		return "", err
	}
	if provider.CertificateImages, err = saveAll(params.Certificates, providerCertificateFolder); err != nil {
		cleanup()
		return "", err
	}
	if provider.DocumentList, err = saveAll(params.Documents, providerDocumentFolder); err != nil {
		cleanup()
		return "", err
	}

	id, err := s.storage.CreateServiceProvider(ctx, provider)
	if err != nil {
		cleanup()
		return "", err
	}
	return id, nil
}

func (s *Provider) Update(ctx context.Context, id string, params UpdateProviderParams) error {
	var patch pg.ServiceProviderPatch

	if params.ServiceName != nil {
		serviceName := strings.TrimSpace(*params.ServiceName)
		if serviceName == "" {
			return &errors.ErrorWithStatusCode{Message: "Service name is required", StatusCode: http.StatusBadRequest}
		}
		slug := GenerateSlug(serviceName)
		patch.ServiceName = &serviceName
		patch.Slug = &slug
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return &errors.ErrorWithStatusCode{Message: "Invalid status", StatusCode: http.StatusBadRequest}
		}
		patch.Status = params.Status
	}

	var saved []string
	if params.Logo != nil {
		path, err := s.media.Save(params.Logo.Data, providerLogoFolder, params.Logo.Extension)
		if err != nil {
			return err
		}
		saved = append(saved, path)
		patch.LogoImage = &path
	}
	if params.IdCardFront != nil {
		path, err := s.media.Save(params.IdCardFront.Data, providerIdCardFolder, params.IdCardFront.Extension)
		if err != nil {
			return err
		}
		saved = append(saved, path)
		patch.IdCardFrontImage = &path
	}

	if err := s.storage.UpdateServiceProvider(ctx, id, patch); err != nil {
		for _, path := range saved {
			if derr := s.media.Delete(path); derr != nil {
				logger.Log.Warn("failed to clean up orphaned upload", "path", path, "error", derr)
			}
		}
		return err
	}
	return nil
}

// SetStatus is the approve/reject action on the applications list.
func (s *Provider) SetStatus(ctx context.Context, id string, status domain.ProviderStatus) error {
	if !status.Valid() {
		return &errors.ErrorWithStatusCode{Message: "Invalid status", StatusCode: http.StatusBadRequest}
	}
	return s.storage.UpdateServiceProviderStatus(ctx, id, status)
}

// Delete soft-deletes the application. Files stay on disk for audit.
func (s *Provider) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteServiceProvider(ctx, id)
}

func (s *Provider) sanitize(value *string) *string {
	if value == nil {
		return nil
	}
	clean := strings.TrimSpace(s.sanitizer.Sanitize(*value))
	return &clean
}
