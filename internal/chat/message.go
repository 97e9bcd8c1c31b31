// Package chat holds the client-side stylist conversation: an append-only
// transcript and the orchestrator that sends turns and absorbs failures.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Greeting seeds every new transcript.
const Greeting = "Hello! I'm your AI Fashion Stylist. I can help you find the perfect outfit for any occasion, suggest color combinations, and provide personalized style advice. You can also upload photos of outfits for me to analyze and give feedback! What fashion help do you need today?"

// Message is one turn of the conversation. User turns may carry
// UploadedImages, assistant turns may carry Images.
type Message struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	IsUser         bool      `json:"is_user"`
	Timestamp      time.Time `json:"timestamp"`
	UploadedImages []string  `json:"uploaded_images,omitempty"`
	Images         []string  `json:"images,omitempty"`
}

func newMessageID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Transcript is an ordered, append-only list of messages.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript returns a transcript holding only the greeting.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Append(Message{Content: Greeting})
	return t
}

// Append stamps m with an id and timestamp when missing and stores it.
func (t *Transcript) Append(m Message) Message {
	if m.ID == "" {
		m.ID = newMessageID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	t.mu.Lock()
	t.messages = append(t.messages, m)
	t.mu.Unlock()
	return m
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Message(nil), t.messages...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// LastUserMessage returns the most recent user message.
func (t *Transcript) LastUserMessage() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].IsUser {
			return t.messages[i], true
		}
	}
	return Message{}, false
}
