package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
	"github.com/xiaot623/neuralthreads/internal/style"
	"github.com/xiaot623/neuralthreads/internal/upload"
)

const (
	// DefaultImageMessage is the user message content when only images are sent.
	DefaultImageMessage = "Please analyze these outfit photos"
	// ErrorToast is shown when the stylist failed and local advice was used.
	ErrorToast = "I'm having a moment, but I provided some general advice above. Please try again!"
)

// ErrRateLimited marks a stylist failure caused by rate limiting. Such
// failures still fall back to local advice but do not raise a toast.
var ErrRateLimited = errors.New("stylist rate limited")

var errEmptyResponse = errors.New("stylist returned an empty response")

// Stylist answers a styling request.
type Stylist interface {
	Ask(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error)
}

// Notifier surfaces user-visible error notifications.
type Notifier interface {
	Notify(message string)
}

// Observer is told about every appended message and loading change.
type Observer interface {
	OnMessage(m Message)
	OnLoading(loading bool)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNotifier sets where error toasts go. Without one they are dropped.
func WithNotifier(n Notifier) Option { return func(o *Orchestrator) { o.notifier = n } }

// WithObserver registers obs for message and loading updates.
func WithObserver(obs Observer) Option { return func(o *Orchestrator) { o.observer = obs } }

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option { return func(o *Orchestrator) { o.logger = l } }

// WithPendingSet shares p as the pending image set, so uploads added
// elsewhere are attached to the next send. A private set is used otherwise.
func WithPendingSet(p *upload.PendingSet) Option { return func(o *Orchestrator) { o.pending = p } }

// Orchestrator drives one conversation. At most one send is in flight.
type Orchestrator struct {
	stylist    Stylist
	transcript *Transcript
	pending    *upload.PendingSet
	notifier   Notifier
	observer   Observer
	logger     *zap.Logger
	inFlight   atomic.Bool
}

// NewOrchestrator creates an orchestrator with a freshly seeded transcript.
func NewOrchestrator(stylist Stylist, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		stylist:    stylist,
		transcript: NewTranscript(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.pending == nil {
		o.pending = &upload.PendingSet{}
	}
	return o
}

// Transcript returns the conversation, seeded with the greeting.
func (o *Orchestrator) Transcript() *Transcript { return o.transcript }

// Pending returns the images staged for the next send.
func (o *Orchestrator) Pending() *upload.PendingSet { return o.pending }

// Loading reports whether a send is in flight.
func (o *Orchestrator) Loading() bool { return o.inFlight.Load() }

// Send appends a user turn and the stylist's answer, or local fallback
// advice when the stylist fails. It returns false without touching the
// transcript when the input is empty or another send is in flight.
func (o *Orchestrator) Send(ctx context.Context, text string, images []string) bool {
	blank := strings.TrimSpace(text) == ""
	if blank && len(images) == 0 {
		return false
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		o.logger.Debug("send rejected: already in flight")
		return false
	}
	defer o.setLoading(false)

	content := text
	if blank {
		content = DefaultImageMessage
	}
	uploaded := append([]string(nil), images...)
	o.append(Message{Content: content, IsUser: true, UploadedImages: uploaded})
	o.pending.Clear()
	o.notifyLoading(true)

	resp, err := o.ask(ctx, domain.StylistRequest{Message: text, Images: uploaded})
	if err == nil && resp.Response == "" {
		err = errEmptyResponse
	}
	if err != nil {
		o.logger.Warn("stylist failed, using fallback", zap.Error(err))
		o.append(Message{Content: style.FallbackResponse(text), Images: style.Images(text)})
		if !errors.Is(err, ErrRateLimited) && o.notifier != nil {
			o.notifier.Notify(ErrorToast)
		}
		return true
	}

	suggested := resp.Images
	if suggested == nil {
		suggested = []string{}
	}
	o.append(Message{Content: resp.Response, Images: suggested})
	return true
}

// RetryLastMessage re-sends the most recent user turn. It returns false when
// there is none or the send was rejected.
func (o *Orchestrator) RetryLastMessage(ctx context.Context) bool {
	last, ok := o.transcript.LastUserMessage()
	if !ok {
		return false
	}
	return o.Send(ctx, last.Content, last.UploadedImages)
}

func (o *Orchestrator) ask(ctx context.Context, req domain.StylistRequest) (resp *domain.StylistResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stylist panicked: %v", r)
		}
	}()
	resp, err = o.stylist.Ask(ctx, req)
	if err == nil && resp == nil {
		err = errEmptyResponse
	}
	return resp, err
}

func (o *Orchestrator) append(m Message) {
	m = o.transcript.Append(m)
	if o.observer != nil {
		o.observer.OnMessage(m)
	}
}

func (o *Orchestrator) setLoading(loading bool) {
	o.inFlight.Store(loading)
	o.notifyLoading(loading)
}

func (o *Orchestrator) notifyLoading(loading bool) {
	if o.observer != nil {
		o.observer.OnLoading(loading)
	}
}
