// Package service implements the stylist proxy, bookings and profiles on top
// of the store, the upstream model and the booking policy.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/adapter/llm"
	"github.com/xiaot623/neuralthreads/internal/config"
	store "github.com/xiaot623/neuralthreads/internal/repository"
	"github.com/xiaot623/neuralthreads/policy"
)

type Service struct {
	store        store.Store
	llmClient    llm.LLMClient
	config       *config.Config
	policyEngine *policy.Engine
	logger       *zap.Logger
	now          func() time.Time
}

func New(store store.Store, llmClient llm.LLMClient, cfg *config.Config, policyEngine *policy.Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		llmClient:    llmClient,
		config:       cfg,
		policyEngine: policyEngine,
		logger:       logger,
		now:          time.Now,
	}
}
