// Package project exposes project submission and listing over HTTP.
package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threewin/bmc-mentor/backend/internal/middleware"
	model "github.com/threewin/bmc-mentor/backend/internal/model/project"
	authservice "github.com/threewin/bmc-mentor/backend/internal/service/auth"
	"github.com/threewin/bmc-mentor/backend/internal/storage"
	"github.com/threewin/bmc-mentor/backend/internal/store"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

// maxUploadBytes bounds one multipart submission (logo + document).
const maxUploadBytes = 32 << 20

// Handler serves the project routes.
type Handler struct {
	repo    store.Repository
	files   *storage.DiskStore
	authSvc *authservice.Service
}

// New creates the project handler.
func New(repo store.Repository, files *storage.DiskStore, authSvc *authservice.Service) *Handler {
	return &Handler{repo: repo, files: files, authSvc: authSvc}
}

// RegisterRoutes mounts the project endpoints. Submission requires a valid
// token; listing is open.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth(h.authSvc)).Post("/projects", h.handleCreate)
	r.Get("/projects", h.handleList)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	p := model.Project{
		StudentName: r.FormValue("student_name"),
		Title:       r.FormValue("project_title"),
		Description: r.FormValue("description"),
		Phone:       r.FormValue("phone"),
	}
	if p.StudentName == "" || p.Title == "" {
		utils.RespondError(w, http.StatusBadRequest, "student_name and project_title are required")
		return
	}

	logoPath, err := h.saveUpload(r, "logo")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error saving logo")
		return
	}
	p.LogoPath = logoPath

	docPath, err := h.saveUpload(r, "pdf_file")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error saving document")
		return
	}
	p.DocumentPath = docPath

	if _, err := h.repo.InsertProject(r.Context(), &p); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error saving project")
		return
	}

	claims, _ := middleware.ClaimsFrom(r.Context())
	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message":     "project saved",
		"submittedBy": claims.Email,
	})
}

// saveUpload stores an optional multipart file field, returning an empty
// path when the field is absent.
func (h *Handler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.files.Save(header.Filename, file)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.ListProjects(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching projects")
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}

	utils.RespondJSON(w, http.StatusOK, projects)
}
