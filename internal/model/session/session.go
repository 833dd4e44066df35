// Package session holds the per-student conversational state for one
// canvas walkthrough or design-assistance interaction.
package session

import "time"

// Mode selects which assistant drives the conversation.
type Mode string

const (
	ModeBMC    Mode = "bmc"
	ModeDesign Mode = "design"
)

// Message is one turn of the conversation log.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Answer records what the student said for one canvas section. Answers are
// kept as an ordered slice so the summary can replay them in the order they
// were given.
type Answer struct {
	SectionKey string `json:"sectionKey"`
	Text       string `json:"text"`
}

// Session captures a transient conversation keyed by an opaque student id.
type Session struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	Messages  []Message `json:"messages"`
	Progress  int       `json:"progress"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnswerFor returns the recorded answer for a section key.
func (s *Session) AnswerFor(key string) (string, bool) {
	for _, a := range s.Answers {
		if a.SectionKey == key {
			return a.Text, true
		}
	}
	return "", false
}
