package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/adapter/llm"
	"github.com/xiaot623/neuralthreads/internal/domain"
	"github.com/xiaot623/neuralthreads/internal/logger"
	"github.com/xiaot623/neuralthreads/internal/retry"
	"github.com/xiaot623/neuralthreads/internal/style"
)

// ErrNotConfigured is reported in degraded responses when no API key is set.
var ErrNotConfigured = errors.New("Groq API key not configured")

// errEmptyCompletion is returned when the upstream answer has no message.
var errEmptyCompletion = errors.New("invalid response from upstream model")

// Stylist answers a styling question. Rate limiting and a missing API key
// degrade to canned advice with a nil error. Any other failure returns a
// *StylistError carrying the degraded response.
func (s *Service) Stylist(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error) {
	s.logger.Info("stylist request",
		zap.Int("message_len", len(req.Message)),
		zap.Int("image_count", len(req.Images)),
	)

	if s.config.GroqAPIKey == "" && !s.mockMode() {
		s.logger.Warn("stylist upstream not configured")
		return &domain.StylistResponse{
			Error:    ErrNotConfigured.Error(),
			Response: style.UnconfiguredAdvice,
		}, nil
	}

	if limit := s.config.MaxImages; limit > 0 && len(req.Images) > limit {
		s.logger.Warn("dropping images over the configured cap",
			zap.Int("max_images", limit),
			zap.Int("dropped", len(req.Images)-limit),
		)
	}

	chatReq := newStylistRequest(s.config.LLMModel, buildMessages(req.Message, req.Images, s.config.MaxImages))

	start := time.Now()
	resp, err := retry.Do(ctx, s.retryPolicy(), func(ctx context.Context) (*llm.ChatCompletionResponse, error) {
		return s.llmClient.CreateChatCompletion(ctx, chatReq)
	})
	if err != nil {
		if llm.IsRateLimited(err) {
			s.logger.Warn("stylist upstream rate limited", zap.Error(err))
			return &domain.StylistResponse{
				Response: style.HighDemandAdvice,
				Images:   style.Images(req.Message),
			}, nil
		}
		s.logger.Error("stylist upstream failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &StylistError{Err: err, Response: style.TechnicalAdvice}
	}

	content, ok := resp.FirstContent()
	if !ok {
		s.logger.Error("stylist upstream returned no message", zap.String("id", resp.ID))
		return nil, &StylistError{Err: errEmptyCompletion, Response: style.TechnicalAdvice}
	}

	s.logger.Info("stylist response",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("preview", logger.Truncate(content, 80)),
	)
	return &domain.StylistResponse{
		Response: content,
		Images:   style.Images(req.Message),
	}, nil
}

// DegradedStylistResponse is the payload sent when the request itself could
// not be read.
func DegradedStylistResponse(err error) *domain.StylistResponse {
	return &domain.StylistResponse{Error: err.Error(), Response: style.TechnicalAdvice}
}

func (s *Service) retryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: s.config.LLMRetryAttempts,
		BaseDelay:   s.config.LLMRetryDelay,
		Retryable:   llm.IsRateLimited,
		OnRetry: func(err error, wait time.Duration) {
			s.logger.Info("retrying stylist upstream", zap.Duration("wait", wait), zap.Error(err))
		},
	}
}

func (s *Service) mockMode() bool {
	_, ok := s.llmClient.(*llm.MockClient)
	return ok
}
