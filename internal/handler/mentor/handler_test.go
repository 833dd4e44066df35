package mentor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/threewin/bmc-mentor/backend/internal/model/canvas"
	mentorservice "github.com/threewin/bmc-mentor/backend/internal/service/mentor"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
)

func setupRouter() (*chi.Mux, *session.Store) {
	sessions := session.NewStore()
	svc := mentorservice.NewService(sessions, nil)
	h := New(sessions, svc)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, sessions
}

func postJSON(t *testing.T, r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartCreatesSession(t *testing.T) {
	r, sessions := setupRouter()

	resp := postJSON(t, r, "/start", map[string]string{"studentId": "s1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if _, err := sessions.Get("s1"); err != nil {
		t.Fatalf("session not created: %v", err)
	}

	var body struct {
		Sections []canvas.Section `json:"sections"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Sections) != canvas.SectionCount {
		t.Fatalf("expected %d sections, got %d", canvas.SectionCount, len(body.Sections))
	}
	if body.Sections[0].Key != "partners" {
		t.Fatalf("expected partners first, got %q", body.Sections[0].Key)
	}
}

func TestStartMissingStudentID(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/start", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestNextUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/next", map[string]string{"studentId": "ghost"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestNextReturnsFallbackQuestion(t *testing.T) {
	r, _ := setupRouter()
	postJSON(t, r, "/start", map[string]string{"studentId": "s1"})

	resp := postJSON(t, r, "/next", map[string]string{"studentId": "s1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Question      string `json:"question"`
		TotalSections int    `json:"totalSections"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Question != canvas.SectionAt(0).Fallback {
		t.Fatalf("expected first section fallback, got %q", body.Question)
	}
	if body.TotalSections != canvas.SectionCount {
		t.Fatalf("expected %d sections, got %d", canvas.SectionCount, body.TotalSections)
	}
}

func TestAnswerAdvancesProgress(t *testing.T) {
	r, sessions := setupRouter()
	postJSON(t, r, "/start", map[string]string{"studentId": "s1"})

	resp := postJSON(t, r, "/answer", map[string]string{"studentId": "s1", "answer": "شركاء محليون"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	sess, _ := sessions.Get("s1")
	if sess.Progress != 1 {
		t.Fatalf("expected progress 1, got %d", sess.Progress)
	}
	if got, ok := sess.AnswerFor("partners"); !ok || got != "شركاء محليون" {
		t.Fatalf("answer not recorded: %q %v", got, ok)
	}
}

func TestSummaryEmptySession(t *testing.T) {
	r, _ := setupRouter()
	postJSON(t, r, "/start", map[string]string{"studentId": "s1"})

	resp := postJSON(t, r, "/summary", map[string]string{"studentId": "s1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Summary == "" {
		t.Fatal("expected insufficient-data notice")
	}
}

func TestModeSwitchValidation(t *testing.T) {
	r, sessions := setupRouter()

	resp := postJSON(t, r, "/mode/switch", map[string]string{"studentId": "s1", "mode": "design"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	sess, _ := sessions.Get("s1")
	if sess.Mode != "design" {
		t.Fatalf("expected design mode, got %s", sess.Mode)
	}

	resp = postJSON(t, r, "/mode/switch", map[string]string{"studentId": "s1", "mode": "bogus"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus mode, got %d", resp.Code)
	}
}
