package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
	"github.com/khidma-app/khidma-admin/internal/logger"
	"github.com/khidma-app/khidma-admin/internal/validation"
)

const categoryIconFolder = "service_categories"

type CategoryStorage interface {
	ServiceCategories(ctx context.Context, page, limit int, search string) ([]domain.ServiceCategory, int, error)
	ServiceCategoriesForSelect(ctx context.Context) ([]domain.ServiceCategory, error)
	CreateServiceCategory(ctx context.Context, c domain.ServiceCategory) (string, error)
	UpdateServiceCategory(ctx context.Context, id string, c domain.ServiceCategory) error
	DeleteServiceCategory(ctx context.Context, id string) error
}

type Category struct {
	storage CategoryStorage
	media   MediaStorage
	cfg     *config.Public
}

func NewCategory(storage CategoryStorage, media MediaStorage, cfg *config.Public) *Category {
	return &Category{storage: storage, media: media, cfg: cfg}
}

func (s *Category) List(ctx context.Context, page, limit int, search string) ([]domain.ServiceCategory, int, error) {
	page, limit = normalizePage(page, limit, s.cfg.PageSize)
	return s.storage.ServiceCategories(ctx, page, limit, strings.TrimSpace(search))
}

func (s *Category) ForSelect(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.storage.ServiceCategoriesForSelect(ctx)
}

// Create stores the icon first so the row never references a missing file.
// The slug always derives from the name.
func (s *Category) Create(ctx context.Context, name string, icon *validation.Upload) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}

	category := domain.ServiceCategory{Name: name}
	slug := GenerateSlug(name)
	category.Slug = &slug

	if icon != nil {
		path, err := s.media.Save(icon.Data, categoryIconFolder, icon.Extension)
		if err != nil {
			return "", err
		}
		category.Icon = &path
	}

	id, err := s.storage.CreateServiceCategory(ctx, category)
	if err != nil {
		if category.Icon != nil {
			if derr := s.media.Delete(*category.Icon); derr != nil {
				logger.Log.Warn("failed to clean up orphaned icon", "path", *category.Icon, "error", derr)
			}
		}
		return "", err
	}
	return id, nil
}

// Update replaces the icon when a new one is uploaded; currentIcon is the
// stored path being replaced and is removed on success.
func (s *Category) Update(ctx context.Context, id, name string, currentIcon *string, icon *validation.Upload) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}

	category := domain.ServiceCategory{Name: name, Icon: currentIcon}
	slug := GenerateSlug(name)
	category.Slug = &slug

	if icon != nil {
		path, err := s.media.Save(icon.Data, categoryIconFolder, icon.Extension)
		if err != nil {
			return err
		}
		category.Icon = &path
	}

	if err := s.storage.UpdateServiceCategory(ctx, id, category); err != nil {
		return err
	}

	if icon != nil && currentIcon != nil && *currentIcon != "" {
		if err := s.media.Delete(*currentIcon); err != nil {
			logger.Log.Warn("failed to delete replaced icon", "path", *currentIcon, "error", err)
		}
	}
	return nil
}

// Delete soft-deletes the row. Stored icons stay on disk so existing
// provider pages keep rendering.
func (s *Category) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteServiceCategory(ctx, id)
}
