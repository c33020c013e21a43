package setup

import (
	"github.com/khidma-app/khidma-admin/internal/config"
	"github.com/khidma-app/khidma-admin/internal/handler"
	"github.com/khidma-app/khidma-admin/internal/identity"
	"github.com/khidma-app/khidma-admin/internal/middleware"
	"github.com/khidma-app/khidma-admin/internal/service"
	"github.com/khidma-app/khidma-admin/internal/session"
	"github.com/khidma-app/khidma-admin/internal/storage/fs"
	"github.com/khidma-app/khidma-admin/internal/storage/pg"
)

// Dependencies holds all initialized components.
type Dependencies struct {
	Config       *config.Config
	Storage      *pg.Storage
	Handler      *handler.Handler
	Gate         *middleware.Gate
	LoginLimiter *middleware.LoginRateLimiter
}

// SetupDependencies wires storage, the identity provider client, services
// and handlers together.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		return nil, err
	}

	provider := identity.NewClient(cfg.Private.Identity)
	cookies := session.New(cfg.SecureCookies(), cfg.Public.AccessTokenTTL, cfg.Public.RefreshTokenTTL)
	gate := middleware.NewGate(provider, storage, cookies)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.Public.LoginRPS, cfg.Public.LoginBurst)

	auth := service.NewAuth(provider, storage)
	governorates := service.NewGovernorate(storage, &cfg.Public)
	categories := service.NewCategory(storage, media, &cfg.Public)
	providers := service.NewProvider(storage, media, &cfg.Public)
	users := service.NewUser(storage, provider, &cfg.Public)
	dashboard := service.NewDashboard(storage)
	mediaService := service.NewMedia(media)

	h := handler.New(auth, governorates, categories, providers, users, dashboard, mediaService, gate, cookies, cfg)

	return &Dependencies{
		Config:       cfg,
		Storage:      storage,
		Handler:      h,
		Gate:         gate,
		LoginLimiter: loginLimiter,
	}, nil
}
