package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gufengmap/explore-engine/pkg/chat"
)

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	deepSeekModel          = "deepseek-chat"
)

// DeepSeekService implements LLMService for the DeepSeek chat API.
type DeepSeekService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ LLMService = (*DeepSeekService)(nil)

// DeepSeekChatRequest is the request body for chat completions.
type DeepSeekChatRequest struct {
	Model    string         `json:"model"`
	Messages []chat.Message `json:"messages"`
	Stream   bool           `json:"stream"`
}

// DeepSeekChatResponse is the response envelope for chat completions.
type DeepSeekChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewDeepSeekService creates a DeepSeek chat client. baseURL may be empty
// to use the public endpoint.
func NewDeepSeekService(apiKey string, baseURL string) *DeepSeekService {
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}
	return &DeepSeekService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Chat submits a conversation to DeepSeek and returns the first choice.
func (s *DeepSeekService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	reqBody, err := json.Marshal(DeepSeekChatRequest{
		Model:    deepSeekModel,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp DeepSeekChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}
