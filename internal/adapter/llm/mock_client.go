package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/xiaot623/neuralthreads/internal/logger"
)

// MockClient is a mock implementation of LLMClient for local runs and tests.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response echoing the last user turn.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	responseContent := m.generateMockResponse(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: TextContent(responseContent),
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(responseContent) / 4,
			TotalTokens:      m.estimateTokens(req) + len(responseContent)/4,
		},
		SystemFingerprint: "mock-fp",
	}, nil
}

func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var last ChatMessage
	found := false
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i]
			found = true
			break
		}
	}
	if !found {
		return "[MOCK] This is a mock styling response."
	}

	images := 0
	for _, p := range last.Content.Parts {
		if p.Type == PartTypeImageURL {
			images++
		}
	}
	text := logger.Truncate(last.Content.String(), 100)
	if images > 0 {
		return fmt.Sprintf("[MOCK] Looked at %d image(s) for %q. This is a mock styling response.", images, text)
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock styling response.", text)
}

func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content.String()) / 4
	}
	return total
}
