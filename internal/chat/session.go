// Package chat maintains the append-only conversation transcript and
// drives turns through the assistant client.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"kina/internal/model"
)

// FallbackReply is appended as the assistant turn when the upstream
// call fails. Exactly one fallback per failed turn.
const FallbackReply = "Budget analysis engine busy. Please retry shortly."

// ErrBusy indicates a send is already in flight. The transcript is
// untouched when Send returns this.
var ErrBusy = errors.New("chat: a message is already in flight")

// Sender is the upstream the session talks to. *assistant.Client
// satisfies it.
type Sender interface {
	Send(ctx context.Context, transcript []model.ChatMessage, userText string) (string, error)
}

// Session owns one conversation. Messages are append-only: entries are
// never edited or removed, and a user message stays in the transcript
// even when the assistant call fails.
type Session struct {
	mu       sync.Mutex
	sender   Sender
	messages []model.ChatMessage
	inFlight bool
}

// NewSession creates an empty conversation over the given sender.
func NewSession(sender Sender) *Session {
	return &Session{sender: sender}
}

// Messages returns a snapshot of the transcript in order.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// InFlight reports whether a turn is currently awaiting its reply.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Send runs one full turn: the user message is appended immediately,
// the sender is called with the prior transcript, and exactly one
// assistant message is appended, the reply on success or FallbackReply
// on any failure. The assistant message is returned. Concurrent sends
// are refused with ErrBusy rather than queued.
func (s *Session) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return model.ChatMessage{}, ErrBusy
	}
	s.inFlight = true

	// Snapshot the history before this turn; the upstream sees the
	// conversation as it was when the user hit enter.
	history := make([]model.ChatMessage, len(s.messages))
	copy(history, s.messages)

	userMsg := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, userMsg)
	s.mu.Unlock()

	replyText, err := s.sender.Send(ctx, history, text)
	if err != nil {
		replyText = FallbackReply
	}

	reply := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Text:      replyText,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, reply)
	s.inFlight = false
	s.mu.Unlock()

	return reply, err
}
