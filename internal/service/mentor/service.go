// Package mentor drives the guided Business Model Canvas walkthrough. It
// never lets an upstream text-generation failure reach the student: every
// path degrades to a canned Arabic reply.
package mentor

import (
	"context"
	"log"

	"github.com/threewin/bmc-mentor/backend/internal/service/session"
)

// Generator produces one completion for one prompt. Satisfied by
// textgen.Retryer; nil means no live provider is configured and every call
// falls back immediately.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service generates guiding questions and final summaries for a session.
type Service struct {
	sessions  *session.Store
	generator Generator
}

// NewService wires the mentor to the session store and a text generator.
func NewService(sessions *session.Store, generator Generator) *Service {
	return &Service{sessions: sessions, generator: generator}
}

// generate runs the prompt through the live generator, or reports a miss
// when none is configured.
func (s *Service) generate(ctx context.Context, prompt string) (string, bool) {
	if s.generator == nil {
		return "", false
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[mentor] generation failed, serving fallback: %v", err)
		return "", false
	}
	return text, true
}
