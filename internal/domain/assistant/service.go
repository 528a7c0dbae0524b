// Package assistant implements the conversational shopping helper with
// per-user in-memory history.
package assistant

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"pricefinder/search-api/internal/infrastructure/llmchat"
	"pricefinder/search-api/utils/platformerrors"
)

const (
	// MaxMessageLen bounds a single user message.
	MaxMessageLen = 500
	// historySent is how many stored turns accompany each request.
	historySent = 6
	// historyTrimAt / historyTrimTo bound stored history per user.
	historyTrimAt = 20
	historyTrimTo = 10
)

const systemPrompt = "You are a helpful shopping assistant for a US price comparison site. " +
	"Help users find products, compare prices, and make purchase decisions. " +
	"Keep answers brief and practical."

const apologyReply = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// Backend is the chat completion dependency.
type Backend interface {
	Configured() bool
	Complete(ctx context.Context, messages []llmchat.Message) (string, error)
}

// Service holds conversation state and talks to the chat backend.
type Service struct {
	backend Backend

	mu      sync.Mutex
	history map[string][]llmchat.Message
}

// NewService creates the assistant service.
func NewService(backend Backend) *Service {
	return &Service{
		backend: backend,
		history: make(map[string][]llmchat.Message),
	}
}

// Chat validates the message, sends it with recent history, stores both turns
// and returns the reply. Backend failures yield a canned apology, not an
// error; only an invalid message is rejected.
func (s *Service) Chat(ctx context.Context, userID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", platformerrors.NewError(
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"message is required",
			nil,
		)
	}
	if len([]rune(message)) > MaxMessageLen {
		return "", platformerrors.NewError(
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"message is too long",
			nil,
		)
	}

	messages := s.buildMessages(userID, message)

	reply, err := s.backend.Complete(ctx, messages)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("assistant backend failed")
		return apologyReply, nil
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return apologyReply, nil
	}

	s.appendTurns(userID, message, reply)
	return reply, nil
}

// Clear drops the stored history for one user.
func (s *Service) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, userID)
}

// HistoryLen reports the stored turn count for one user.
func (s *Service) HistoryLen(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history[userID])
}

func (s *Service) buildMessages(userID, message string) []llmchat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.history[userID]
	if len(recent) > historySent {
		recent = recent[len(recent)-historySent:]
	}

	messages := make([]llmchat.Message, 0, len(recent)+2)
	messages = append(messages, llmchat.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, recent...)
	messages = append(messages, llmchat.Message{Role: "user", Content: message})
	return messages
}

func (s *Service) appendTurns(userID, message, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.history[userID],
		llmchat.Message{Role: "user", Content: message},
		llmchat.Message{Role: "assistant", Content: reply},
	)
	if len(turns) > historyTrimAt {
		turns = turns[len(turns)-historyTrimTo:]
	}
	s.history[userID] = turns
}
