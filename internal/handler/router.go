// Package handler wires HTTP routes to core services.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authhandler "github.com/threewin/bmc-mentor/backend/internal/handler/auth"
	designhandler "github.com/threewin/bmc-mentor/backend/internal/handler/design"
	mentorhandler "github.com/threewin/bmc-mentor/backend/internal/handler/mentor"
	projecthandler "github.com/threewin/bmc-mentor/backend/internal/handler/project"
	"github.com/threewin/bmc-mentor/backend/internal/middleware"
	authservice "github.com/threewin/bmc-mentor/backend/internal/service/auth"
	designservice "github.com/threewin/bmc-mentor/backend/internal/service/design"
	mentorservice "github.com/threewin/bmc-mentor/backend/internal/service/mentor"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
	"github.com/threewin/bmc-mentor/backend/internal/storage"
	"github.com/threewin/bmc-mentor/backend/internal/store"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

// Deps bundles everything the router needs.
type Deps struct {
	Sessions  *session.Store
	MentorSvc *mentorservice.Service
	DesignSvc *designservice.Service
	AuthSvc   *authservice.Service
	Repo      store.Repository
	Files     *storage.DiskStore
	Provider  string
}

// NewRouter builds the chi router with all API routes mounted under /api.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	authHandler := authhandler.New(deps.AuthSvc)
	mentorHandler := mentorhandler.New(deps.Sessions, deps.MentorSvc)
	designHandler := designhandler.New(deps.Sessions, deps.DesignSvc, deps.Repo)
	projectHandler := projecthandler.New(deps.Repo, deps.Files, deps.AuthSvc)

	r.Route("/api", func(api chi.Router) {
		authHandler.RegisterRoutes(api)
		mentorHandler.RegisterRoutes(api)
		designHandler.RegisterRoutes(api)
		projectHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			provider := deps.Provider
			if provider == "" {
				provider = "fallback-only"
			}
			status := "ok"
			if deps.Repo != nil {
				if err := deps.Repo.Ping(r.Context()); err != nil {
					status = "degraded"
				}
			}
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":         status,
				"timestamp":      time.Now().UTC().Format(time.RFC3339),
				"activeSessions": deps.Sessions.Len(),
				"provider":       provider,
			})
		})
	})

	return r
}
