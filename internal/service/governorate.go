package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/errors"
)

type GovernorateStorage interface {
	Governorates(ctx context.Context, page, limit int, search string) ([]domain.Governorate, int, error)
	GovernoratesForSelect(ctx context.Context) ([]domain.Governorate, error)
	CreateGovernorate(ctx context.Context, g domain.Governorate) (string, error)
	UpdateGovernorate(ctx context.Context, id string, name string, code *string) error
	DeleteGovernorate(ctx context.Context, id string) error
}

type Governorate struct {
	storage GovernorateStorage
	cfg     *config.Public
}

func NewGovernorate(storage GovernorateStorage, cfg *config.Public) *Governorate {
	return &Governorate{storage: storage, cfg: cfg}
}

func (s *Governorate) List(ctx context.Context, page, limit int, search string) ([]domain.Governorate, int, error) {
	page, limit = normalizePage(page, limit, s.cfg.PageSize)
	return s.storage.Governorates(ctx, page, limit, strings.TrimSpace(search))
}

func (s *Governorate) ForSelect(ctx context.Context) ([]domain.Governorate, error) {
	return s.storage.GovernoratesForSelect(ctx)
}

func (s *Governorate) Create(ctx context.Context, name string, code *string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}
	return s.storage.CreateGovernorate(ctx, domain.Governorate{Name: name, Code: code})
}

func (s *Governorate) Update(ctx context.Context, id, name string, code *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}
	return s.storage.UpdateGovernorate(ctx, id, name, code)
}

func (s *Governorate) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteGovernorate(ctx, id)
}

// normalizePage clamps paging inputs to sane values.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
