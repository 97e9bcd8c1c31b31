package stylist

import (
	"context"

	"github.com/xiaot623/neuralthreads/internal/chat"
	"github.com/xiaot623/neuralthreads/internal/domain"
)

// Service is the server-side stylist.
type Service interface {
	Stylist(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error)
}

// Local calls the stylist service in process.
type Local struct {
	svc Service
}

// NewLocal wraps svc as a chat.Stylist.
func NewLocal(svc Service) *Local {
	return &Local{svc: svc}
}

var _ chat.Stylist = (*Local)(nil)

// Ask forwards to the service. Any service error is a failed turn.
func (l *Local) Ask(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error) {
	return l.svc.Stylist(ctx, req)
}
