// Package session owns the process-wide session state for the mentor and
// design assistants.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/threewin/bmc-mentor/backend/internal/model/session"
)

var ErrSessionNotFound = errors.New("session not found")

// designWelcome greets the student the first time a session switches into
// design mode with an empty log.
const designWelcome = "🎨 **مرحباً! أنا مساعدك في التصميم الإبداعي**\n\nيمكنني مساعدتك في:\n• تصميم الشعار والهوية البصرية\n• نصائح الألوان والخطوط\n• تصميم المواقع والعروض التقديمية\n• أدوات التصميم المجانية\n\nما هو التصميم الذي تريد المساعدة فيه؟"

// Store maps opaque session ids to conversation state. Access to the map is
// serialized; two concurrent writers against the same id still race at the
// last-writer-wins level, which is an accepted limitation of this service.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	now      func() time.Time
}

// NewStore bootstraps an empty in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		now:      time.Now,
	}
}

func (s *Store) newSession(id string) *model.Session {
	return &model.Session{
		ID:        id,
		Mode:      model.ModeBMC,
		Messages:  make([]model.Message, 0, 16),
		Answers:   make([]model.Answer, 0, 9),
		CreatedAt: s.now().UTC(),
	}
}

// GetOrCreate returns the session for id, creating it with defaults when
// absent. The returned value is a snapshot.
func (s *Store) GetOrCreate(id string) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = s.newSession(id)
		s.sessions[id] = sess
	}
	return snapshot(sess)
}

// Get returns a snapshot of the session or ErrSessionNotFound.
func (s *Store) Get(id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// SetMode switches the assistant mode, creating the session when absent.
// Switching an empty session into design mode seeds the welcome message.
func (s *Store) SetMode(id string, mode model.Mode) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = s.newSession(id)
		s.sessions[id] = sess
	}
	sess.Mode = mode
	if mode == model.ModeDesign && len(sess.Messages) == 0 {
		sess.Messages = append(sess.Messages, s.message("assistant", designWelcome))
	}
	return snapshot(sess)
}

// RecordUserMessage appends a user turn to the session log.
func (s *Store) RecordUserMessage(id, text string) error {
	return s.record(id, "user", text)
}

// RecordAssistantMessage appends an assistant turn to the session log.
func (s *Store) RecordAssistantMessage(id, text string) error {
	return s.record(id, "assistant", text)
}

func (s *Store) record(id, role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Messages = append(sess.Messages, s.message(role, text))
	return nil
}

func (s *Store) message(role, text string) model.Message {
	return model.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   text,
		CreatedAt: s.now().UTC(),
	}
}

// RecordAnswer stores text under sectionKey and advances progress by exactly
// one. A repeated key keeps its original position in the answer order.
func (s *Store) RecordAnswer(id, sectionKey, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	updated := false
	for i := range sess.Answers {
		if sess.Answers[i].SectionKey == sectionKey {
			sess.Answers[i].Text = text
			updated = true
			break
		}
	}
	if !updated {
		sess.Answers = append(sess.Answers, model.Answer{SectionKey: sectionKey, Text: text})
	}
	sess.Progress++
	return nil
}

// SweepExpired removes every session created before now-ttl and returns the
// number removed.
func (s *Store) SweepExpired(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper runs a background goroutine that sweeps expired sessions on a
// fixed interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Printf("[sweep] session sweeper started interval=%s ttl=%s", interval, ttl)
		for {
			select {
			case <-ticker.C:
				if removed := s.SweepExpired(s.now(), ttl); removed > 0 {
					log.Printf("[sweep] removed %d expired sessions", removed)
				}
			case <-ctx.Done():
				log.Printf("[sweep] session sweeper shutting down: %v", ctx.Err())
				return
			}
		}
	}()
}

func snapshot(sess *model.Session) model.Session {
	out := *sess
	out.Messages = append([]model.Message(nil), sess.Messages...)
	out.Answers = append([]model.Answer(nil), sess.Answers...)
	return out
}
