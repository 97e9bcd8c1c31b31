package ws

import "github.com/xiaot623/neuralthreads/internal/chat"

// Frame types from client to server.
const (
	TypeSend    = "send"
	TypeRetry   = "retry"
	TypeStage   = "stage"
	TypeUnstage = "unstage"
)

// Frame types from server to client.
const (
	TypeTranscript = "transcript"
	TypeMessage    = "message"
	TypeLoading    = "loading"
	TypeStaged     = "staged"
	TypeToast      = "toast"
	TypeError      = "error"
)

// Error codes.
const (
	ErrorCodeInvalidMessage = "INVALID_MESSAGE"
	ErrorCodeRejected       = "REJECTED"
)

// BaseMessage contains common fields for all frames.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	SessionID string `json:"session_id,omitempty"`
}

// SendMessage asks the stylist a question. When Images is nil the staged
// images are sent.
type SendMessage struct {
	BaseMessage
	Message string   `json:"message"`
	Images  []string `json:"images,omitempty"`
}

// StageMessage adds images to the pending set.
type StageMessage struct {
	BaseMessage
	Images []string `json:"images"`
}

// UnstageMessage removes one staged image.
type UnstageMessage struct {
	BaseMessage
	Index int `json:"index"`
}

// TranscriptMessage carries the whole conversation.
type TranscriptMessage struct {
	BaseMessage
	Messages []chat.Message `json:"messages"`
}

// MessageMessage carries one appended message.
type MessageMessage struct {
	BaseMessage
	Message chat.Message `json:"message"`
}

// LoadingMessage reports the in-flight state.
type LoadingMessage struct {
	BaseMessage
	Loading bool `json:"loading"`
}

// StagedMessage carries the pending images after a change.
type StagedMessage struct {
	BaseMessage
	Images []string `json:"images"`
}

// ToastMessage is a user-visible notification.
type ToastMessage struct {
	BaseMessage
	Message string `json:"message"`
}

// ErrorMessage reports a protocol error.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}
