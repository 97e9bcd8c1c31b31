package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/chat"
	"github.com/xiaot623/neuralthreads/internal/config"
)

// Server handles WebSocket chat connections.
type Server struct {
	cfg      *config.Config
	hub      *Hub
	stylist  chat.Stylist
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server. Every connection gets its own
// orchestrator backed by stylist.
func NewServer(cfg *config.Config, h *Hub, stylist chat.Stylist, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:     cfg,
		hub:     h,
		stylist: stylist,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/stylist", s.HandleWebSocket)
}

// session is the per-connection conversation.
type session struct {
	conn   *Connection
	orch   *chat.Orchestrator
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

func (s *session) base(typ string) BaseMessage {
	return BaseMessage{Type: typ, Ts: time.Now().UnixMilli(), SessionID: s.conn.ID}
}

func (s *session) send(v interface{}) {
	if err := s.conn.SendJSON(v); err != nil {
		s.logger.Warn("failed to queue frame", zap.Error(err))
	}
}

func (s *session) OnMessage(m chat.Message) {
	s.send(MessageMessage{BaseMessage: s.base(TypeMessage), Message: m})
}

func (s *session) OnLoading(loading bool) {
	s.send(LoadingMessage{BaseMessage: s.base(TypeLoading), Loading: loading})
}

func (s *session) Notify(message string) {
	s.send(ToastMessage{BaseMessage: s.base(TypeToast), Message: message})
}

func (s *session) sendError(code, message string) {
	s.send(ErrorMessage{BaseMessage: s.base(TypeError), Code: code, Message: message})
}

func (s *session) sendStaged() {
	s.send(StagedMessage{BaseMessage: s.base(TypeStaged), Images: s.orch.Pending().Images()})
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("failed to upgrade websocket", zap.Error(err))
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)
	ws.SetReadLimit(s.cfg.MaxMessageSize)

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		logger: s.logger.With(zap.String("conn_id", conn.ID)),
	}
	sess.orch = chat.NewOrchestrator(s.stylist,
		chat.WithObserver(sess),
		chat.WithNotifier(sess),
		chat.WithLogger(sess.logger),
	)

	sess.send(TranscriptMessage{BaseMessage: sess.base(TypeTranscript), Messages: sess.orch.Transcript().Messages()})
	sess.logger.Info("chat session opened")

	go s.writePump(conn)
	go s.readPump(sess)

	return nil
}

// readPump reads frames until the connection fails, then discards the session.
func (s *Server) readPump(sess *session) {
	conn := sess.conn
	defer func() {
		sess.cancel()
		s.hub.Unregister(conn)
		conn.Close()
		sess.logger.Info("chat session closed", zap.Int("messages", sess.orch.Transcript().Len()))
	}()

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				sess.logger.Warn("websocket error", zap.Error(err))
			}
			return
		}

		s.handleMessage(sess, message)
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (s *Server) writePump(conn *Connection) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("failed to write frame", zap.Error(err))
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches incoming frames.
func (s *Server) handleMessage(sess *session, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		sess.sendError(ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch baseMsg.Type {
	case TypeSend:
		s.handleSend(sess, data)
	case TypeRetry:
		s.handleRetry(sess)
	case TypeStage:
		s.handleStage(sess, data)
	case TypeUnstage:
		s.handleUnstage(sess, data)
	default:
		sess.sendError(ErrorCodeInvalidMessage, "unknown message type: "+baseMsg.Type)
	}
}

func (s *Server) handleSend(sess *session, data []byte) {
	var msg SendMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		sess.sendError(ErrorCodeInvalidMessage, "invalid send message")
		return
	}
	images := msg.Images
	if images == nil {
		images = sess.orch.Pending().Images()
	}
	if strings.TrimSpace(msg.Message) == "" && len(images) == 0 {
		sess.sendError(ErrorCodeRejected, "message or images required")
		return
	}
	if sess.orch.Loading() {
		sess.sendError(ErrorCodeRejected, "a message is already being answered")
		return
	}

	// Run off the read loop so frames keep flowing while the stylist answers.
	go func() {
		if !sess.orch.Send(sess.ctx, msg.Message, images) {
			sess.sendError(ErrorCodeRejected, "a message is already being answered")
		}
	}()
}

func (s *Server) handleRetry(sess *session) {
	if _, ok := sess.orch.Transcript().LastUserMessage(); !ok {
		sess.sendError(ErrorCodeRejected, "nothing to retry")
		return
	}
	go func() {
		if !sess.orch.RetryLastMessage(sess.ctx) {
			sess.sendError(ErrorCodeRejected, "a message is already being answered")
		}
	}()
}

func (s *Server) handleStage(sess *session, data []byte) {
	var msg StageMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		sess.sendError(ErrorCodeInvalidMessage, "invalid stage message")
		return
	}
	batch := make([]string, 0, len(msg.Images))
	for _, img := range msg.Images {
		if strings.HasPrefix(img, "data:image/") {
			batch = append(batch, img)
		}
	}
	sess.orch.Pending().Append(batch)
	sess.sendStaged()
}

func (s *Server) handleUnstage(sess *session, data []byte) {
	var msg UnstageMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		sess.sendError(ErrorCodeInvalidMessage, "invalid unstage message")
		return
	}
	sess.orch.Pending().Remove(msg.Index)
	sess.sendStaged()
}
