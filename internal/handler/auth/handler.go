// Package auth exposes registration and login over HTTP.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/threewin/bmc-mentor/backend/internal/service/auth"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

// Handler serves the auth routes.
type Handler struct {
	authSvc *authservice.Service
}

// New creates the auth handler.
func New(authSvc *authservice.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes mounts the auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "all fields required")
		return
	}

	if _, err := h.authSvc.Register(r.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		if errors.Is(err, authservice.ErrDuplicateEmail) {
			utils.RespondError(w, http.StatusBadRequest, "email already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	token, err := h.authSvc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, authservice.ErrInvalidCredential):
			utils.RespondError(w, http.StatusUnauthorized, "invalid password")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
		"token":   token,
	})
}
