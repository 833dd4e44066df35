package mentor

import (
	"context"
	"fmt"

	"github.com/threewin/bmc-mentor/backend/internal/model/canvas"
	model "github.com/threewin/bmc-mentor/backend/internal/model/session"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
)

const questionPromptTemplate = `أنت مستشار لمشاريع طلاب حاضنة أعمال 3win في مركز جامعي مغنية.
قسم النموذج الحالي: "%s".
اكتب سؤالاً واحداً باللغة العربية لتوجيه الطالب في هذا القسم.
يجب أن يكون السؤال واضحاً ومباشراً ويتعلق بـ %s.`

// NextQuestion produces the guiding question for the session's current
// canvas section. The section is progress mod 9, so the walkthrough wraps
// after the ninth answer. Upstream failures degrade to the section's canned
// question; the only error that surfaces is an unknown session id.
func (s *Service) NextQuestion(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}

	section := canvas.SectionAt(sess.Progress)
	prompt := fmt.Sprintf(questionPromptTemplate, section.Title, section.Title)

	text, ok := s.generate(ctx, prompt)
	if !ok {
		text = section.Fallback
	}

	if err := s.sessions.RecordAssistantMessage(sessionID, text); err != nil {
		// Session swept between lookup and record; the question is still valid.
		if err != session.ErrSessionNotFound {
			return "", err
		}
	}
	return text, nil
}

// RecordAnswer logs the user turn and, while the session is in canvas mode,
// stores the answer under the section active before the progress increment.
func (s *Service) RecordAnswer(sessionID, answer string) (int, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}

	if err := s.sessions.RecordUserMessage(sessionID, answer); err != nil {
		return 0, err
	}

	if sess.Mode == model.ModeBMC {
		section := canvas.SectionAt(sess.Progress)
		if err := s.sessions.RecordAnswer(sessionID, section.Key, answer); err != nil {
			return 0, err
		}
	}

	updated, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}
	return updated.Progress, nil
}
