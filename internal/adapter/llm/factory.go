package llm

import (
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	// EnvStylistMode is the environment variable name for mode selection.
	EnvStylistMode = "STYLIST_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates an LLM client based on the STYLIST_MODE environment variable.
// If STYLIST_MODE=MOCK, returns a MockClient; otherwise returns a real Client.
func NewLLMClient(logger *zap.Logger, baseURL, apiKey string, timeout time.Duration, opts ...Option) LLMClient {
	if os.Getenv(EnvStylistMode) == ModeMock {
		logger.Info("using mock LLM client", zap.String("env", EnvStylistMode))
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout, opts...)
}
