package session

import (
	"testing"
	"time"

	"github.com/threewin/bmc-mentor/backend/internal/model/canvas"
	model "github.com/threewin/bmc-mentor/backend/internal/model/session"
)

func TestGetOrCreateDefaults(t *testing.T) {
	store := NewStore()

	sess := store.GetOrCreate("student-1")
	if sess.Mode != model.ModeBMC {
		t.Fatalf("expected bmc mode, got %s", sess.Mode)
	}
	if sess.Progress != 0 {
		t.Fatalf("expected progress 0, got %d", sess.Progress)
	}
	if len(sess.Messages) != 0 || len(sess.Answers) != 0 {
		t.Fatal("expected empty log and answers")
	}
	if sess.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}
}

func TestGetMissingSession(t *testing.T) {
	store := NewStore()
	if _, err := store.Get("missing"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRecordAnswerAdvancesProgress(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("student-1")

	for i := 0; i < 11; i++ {
		section := canvas.SectionAt(i)
		if err := store.RecordAnswer("student-1", section.Key, "إجابة"); err != nil {
			t.Fatalf("RecordAnswer err: %v", err)
		}
		sess, err := store.Get("student-1")
		if err != nil {
			t.Fatalf("Get err: %v", err)
		}
		if sess.Progress != i+1 {
			t.Fatalf("after answer %d: progress %d", i, sess.Progress)
		}
		// Wrap-around keeps indexing valid past the ninth section.
		_ = canvas.SectionAt(sess.Progress)
	}

	sess, _ := store.Get("student-1")
	if got, ok := sess.AnswerFor("partners"); !ok || got != "إجابة" {
		t.Fatalf("partners answer missing: %q %v", got, ok)
	}
	// 11 answers across 9 sections: two keys were overwritten in place.
	if len(sess.Answers) != 9 {
		t.Fatalf("expected 9 stored answers, got %d", len(sess.Answers))
	}
}

func TestAnswersKeepInsertionOrder(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("s")
	store.RecordAnswer("s", "partners", "X")
	store.RecordAnswer("s", "costs", "Y")

	sess, _ := store.Get("s")
	if sess.Answers[0].SectionKey != "partners" || sess.Answers[1].SectionKey != "costs" {
		t.Fatalf("unexpected answer order: %+v", sess.Answers)
	}
}

func TestSetModeSeedsDesignWelcome(t *testing.T) {
	store := NewStore()

	sess := store.SetMode("s", model.ModeDesign)
	if sess.Mode != model.ModeDesign {
		t.Fatalf("expected design mode, got %s", sess.Mode)
	}
	if len(sess.Messages) != 1 || sess.Messages[0].Role != "assistant" {
		t.Fatalf("expected seeded welcome message, got %+v", sess.Messages)
	}

	// Switching back and forth must not duplicate the welcome.
	store.SetMode("s", model.ModeBMC)
	sess = store.SetMode("s", model.ModeDesign)
	if len(sess.Messages) != 1 {
		t.Fatalf("expected single welcome message, got %d", len(sess.Messages))
	}
}

func TestSweepExpired(t *testing.T) {
	store := NewStore()
	now := time.Now().UTC()

	store.now = func() time.Time { return now.Add(-3 * time.Hour) }
	store.GetOrCreate("old")
	store.now = func() time.Time { return now.Add(-1 * time.Hour) }
	store.GetOrCreate("fresh")

	removed := store.SweepExpired(now, 2*time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := store.Get("old"); err != ErrSessionNotFound {
		t.Fatal("old session should be gone")
	}
	if _, err := store.Get("fresh"); err != nil {
		t.Fatalf("fresh session should survive: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", store.Len())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("s")
	store.RecordUserMessage("s", "first")

	snap, _ := store.Get("s")
	snap.Messages[0].Content = "mutated"

	again, _ := store.Get("s")
	if again.Messages[0].Content != "first" {
		t.Fatal("snapshot mutation leaked into the store")
	}
}
