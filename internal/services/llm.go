package services

import (
	"context"

	"github.com/gufengmap/explore-engine/pkg/chat"
)

// LLMService defines the interface for chat-completion backends.
type LLMService interface {
	// Chat submits a conversation and returns the completion text.
	Chat(ctx context.Context, messages []chat.Message) (string, error)
}
