package services

import (
	"context"
	"sync"

	"github.com/gufengmap/explore-engine/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing.
type MockLLM struct {
	ChatFunc func(ctx context.Context, messages []chat.Message) (string, error)

	// Track calls for testing
	ChatCalls [][]chat.Message

	mu sync.Mutex
}

var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		ChatCalls: make([][]chat.Message, 0),
	}
}

// Chat records the call and delegates to ChatFunc if set.
func (m *MockLLM) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, messages)
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return "(no response)", nil
}
