package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khidma-app/khidma-admin/internal/middleware"
	"github.com/khidma-app/khidma-admin/internal/middleware/metrics"
	"github.com/khidma-app/khidma-admin/internal/setup"
)

// New wires all routes. Everything under /admin except the login and
// unauthorized pages sits behind the edge filter and the access gate.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// JSON API only: no scripts or styles are ever served
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeaders(deps.Config.SecureCookies(), apiCSP))

	h := deps.Handler

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/media/*", h.ServeMedia)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.EdgeFilter)

		r.Get("/login", h.LoginPage)
		r.With(deps.LoginLimiter.Middleware).Post("/login", h.Login)
		r.Get("/unauthorized", h.Unauthorized)
		r.Post("/logout", h.Logout)

		// Everything below requires a verified admin session.
		r.Group(func(r chi.Router) {
			r.Use(deps.Gate.RequireAdmin())

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, "/admin/api/dashboard", http.StatusSeeOther)
			})

			r.Route("/api", func(r chi.Router) {
				r.Get("/dashboard", h.GetDashboardStats)

				r.Route("/governorates", func(r chi.Router) {
					r.Get("/", h.GetGovernorates)
					r.Get("/select", h.GetGovernoratesForSelect)
					r.Post("/", h.CreateGovernorate)
					r.Put("/{id}", h.UpdateGovernorate)
					r.Delete("/{id}", h.DeleteGovernorate)
				})

				r.Route("/service-categories", func(r chi.Router) {
					r.Get("/", h.GetServiceCategories)
					r.Get("/select", h.GetServiceCategoriesForSelect)
					r.Post("/", h.CreateServiceCategory)
					r.Put("/{id}", h.UpdateServiceCategory)
					r.Delete("/{id}", h.DeleteServiceCategory)
				})

				r.Route("/service-providers", func(r chi.Router) {
					r.Get("/", h.GetServiceProviders)
					r.Get("/{id}", h.GetServiceProvider)
					r.Post("/", h.CreateServiceProvider)
					r.Put("/{id}", h.UpdateServiceProvider)
					r.Patch("/{id}/status", h.UpdateServiceProviderStatus)
					r.Delete("/{id}", h.DeleteServiceProvider)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.GetUsers)
					r.Get("/select", h.GetUsersForSelect)
					r.Get("/{id}", h.GetUser)
					r.Post("/", h.CreateUser)
					r.Put("/{id}", h.UpdateUser)
					r.Patch("/{id}/role", h.UpdateUserRole)
					r.Patch("/{id}/ban", h.UpdateUserBan)
					r.Post("/{id}/password", h.SetUserPassword)
					r.Post("/{id}/confirm-email", h.ConfirmUserEmail)
					r.Post("/{id}/confirm-phone", h.ConfirmUserPhone)
					r.Delete("/{id}", h.DeleteUser)
				})
			})
		})
	})

	return r
}
