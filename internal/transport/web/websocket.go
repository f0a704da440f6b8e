package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/sandevgo/lexbot/pkg/log"
)

const (
	wsReadLimit   = 64 << 10
	wsIdleTimeout = 5 * time.Minute
	wsWriteWait   = 10 * time.Second
)

// handleWebSocket answers every text frame with one text frame. The session
// is taken from ?session_id= or generated per connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger.Debug().Str("session_id", sessionID).Msg("websocket connected")

	conn.SetReadLimit(wsReadLimit)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		ex := s.chat.Handle(ctx, chat.Message{
			SessionID: sessionID,
			User:      core.GuestUser,
			Text:      string(payload),
			Transport: "ws",
		})

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(ex.Response)); err != nil {
			logger.Warn().Err(err).Msg("websocket write error")
			return
		}
	}
}
