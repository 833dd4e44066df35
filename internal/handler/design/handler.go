// Package design exposes the free-form design assistant and saved designs
// over HTTP and WebSocket.
package design

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/threewin/bmc-mentor/backend/internal/model/project"
	designservice "github.com/threewin/bmc-mentor/backend/internal/service/design"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
	"github.com/threewin/bmc-mentor/backend/internal/store"
	"github.com/threewin/bmc-mentor/backend/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Handler serves the design assistant routes.
type Handler struct {
	sessions  *session.Store
	designSvc *designservice.Service
	repo      store.Repository
}

// New creates the design handler.
func New(sessions *session.Store, designSvc *designservice.Service, repo store.Repository) *Handler {
	return &Handler{sessions: sessions, designSvc: designSvc, repo: repo}
}

// RegisterRoutes mounts the design assistant endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/history/{studentID}", h.handleHistory)
	r.Get("/chat/ws/{studentID}", h.handleChatWS)
	r.Post("/design/suggestions", h.handleSuggestions)
	r.Post("/design/save", h.handleSave)
	r.Get("/designs/{studentID}", h.handleList)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StudentID string `json:"studentId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.StudentID == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "studentId and message are required")
		return
	}

	response, err := h.designSvc.Respond(r.Context(), payload.StudentID, payload.Message)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	sess, _ := h.sessions.Get(payload.StudentID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"response": response,
		"mode":     sess.Mode,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	sess, err := h.sessions.Get(studentID)
	if err != nil {
		// Unknown session yields an empty history rather than an error.
		utils.RespondJSON(w, http.StatusOK, map[string]any{"history": []any{}})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"history":  sess.Messages,
		"mode":     sess.Mode,
		"progress": sess.Progress,
		"answers":  sess.Answers,
	})
}

// handleChatWS relays the design assistant over a WebSocket: one text frame
// in, one JSON reply frame out.
func (h *Handler) handleChatWS(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[design] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage || len(data) == 0 {
			continue
		}

		response, err := h.designSvc.Respond(r.Context(), studentID, string(data))
		if err != nil {
			log.Printf("[design] websocket respond failed for student=%s: %v", studentID, err)
			conn.WriteJSON(map[string]string{"error": "failed to process message"})
			continue
		}
		if err := conn.WriteJSON(map[string]string{"response": response}); err != nil {
			return
		}
	}
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StudentID   string `json:"studentId"`
		ProjectType string `json:"projectType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.StudentID == "" || payload.ProjectType == "" {
		utils.RespondError(w, http.StatusBadRequest, "studentId and projectType are required")
		return
	}

	suggestions := h.designSvc.Suggestions(r.Context(), payload.ProjectType)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"suggestions": suggestions,
		"projectType": payload.ProjectType,
	})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StudentID  string `json:"studentId"`
		DesignType string `json:"designType"`
		DesignData string `json:"designData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.StudentID == "" || payload.DesignType == "" {
		utils.RespondError(w, http.StatusBadRequest, "studentId and designType are required")
		return
	}

	_, err := h.repo.InsertDesign(r.Context(), &project.Design{
		StudentID:  payload.StudentID,
		DesignType: payload.DesignType,
		DesignData: payload.DesignData,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save design")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "design saved successfully"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	designs, err := h.repo.ListDesignsByStudent(r.Context(), studentID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch designs")
		return
	}
	if designs == nil {
		designs = []project.Design{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"designs": designs})
}
