package handler

import (
	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/middleware"
	"github.com/khidma-app/khidma-admin/internal/service"
	"github.com/khidma-app/khidma-admin/internal/session"
)

type Handler struct {
	auth         *service.Auth
	governorates *service.Governorate
	categories   *service.Category
	providers    *service.Provider
	users        *service.User
	dashboard    *service.Dashboard
	media        *service.Media
	gate         *middleware.Gate
	cookies      *session.Store
	cfg          *config.Config
}

func New(
	auth *service.Auth,
	governorates *service.Governorate,
	categories *service.Category,
	providers *service.Provider,
	users *service.User,
	dashboard *service.Dashboard,
	media *service.Media,
	gate *middleware.Gate,
	cookies *session.Store,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:         auth,
		governorates: governorates,
		categories:   categories,
		providers:    providers,
		users:        users,
		dashboard:    dashboard,
		media:        media,
		gate:         gate,
		cookies:      cookies,
		cfg:          cfg,
	}
}
