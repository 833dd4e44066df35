// Package mentor exposes the guided canvas walkthrough over HTTP.
package mentor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threewin/bmc-mentor/backend/internal/model/canvas"
	model "github.com/threewin/bmc-mentor/backend/internal/model/session"
	mentorservice "github.com/threewin/bmc-mentor/backend/internal/service/mentor"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

// Handler serves the canvas walkthrough routes.
type Handler struct {
	sessions  *session.Store
	mentorSvc *mentorservice.Service
}

// New creates the mentor handler.
func New(sessions *session.Store, mentorSvc *mentorservice.Service) *Handler {
	return &Handler{sessions: sessions, mentorSvc: mentorSvc}
}

// RegisterRoutes mounts the walkthrough endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start", h.handleStart)
	r.Post("/next", h.handleNext)
	r.Post("/answer", h.handleAnswer)
	r.Post("/summary", h.handleSummary)
	r.Post("/mode/switch", h.handleModeSwitch)
}

type sessionPayload struct {
	StudentID string `json:"studentId"`
	Answer    string `json:"answer,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

func decodePayload(w http.ResponseWriter, r *http.Request) (sessionPayload, bool) {
	var payload sessionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return payload, false
	}
	if payload.StudentID == "" {
		utils.RespondError(w, http.StatusBadRequest, "studentId is required")
		return payload, false
	}
	return payload, true
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	h.sessions.GetOrCreate(payload.StudentID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   "session started",
		"studentId": payload.StudentID,
		"sections":  canvas.Sections(),
	})
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	question, err := h.mentorSvc.NextQuestion(r.Context(), payload.StudentID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "no active session found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate question")
		return
	}

	sess, _ := h.sessions.Get(payload.StudentID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"question":      question,
		"progress":      sess.Progress,
		"totalSections": canvas.SectionCount,
	})
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	if payload.Answer == "" {
		utils.RespondError(w, http.StatusBadRequest, "answer is required")
		return
	}

	progress, err := h.mentorSvc.RecordAnswer(payload.StudentID, payload.Answer)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "no active session found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":       "answer saved",
		"progress":      progress,
		"totalSections": canvas.SectionCount,
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	summary, err := h.mentorSvc.FinalSummary(r.Context(), payload.StudentID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "no active session found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate summary")
		return
	}

	sess, _ := h.sessions.Get(payload.StudentID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"answers": sess.Answers,
	})
}

func (h *Handler) handleModeSwitch(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	mode := model.Mode(payload.Mode)
	if mode != model.ModeBMC && mode != model.ModeDesign {
		utils.RespondError(w, http.StatusBadRequest, "mode must be bmc or design")
		return
	}

	sess := h.sessions.SetMode(payload.StudentID, mode)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "mode switched to " + payload.Mode,
		"mode":    sess.Mode,
	})
}
