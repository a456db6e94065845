package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxFrameBytes caps a single client frame; larger frames close the connection.
const maxFrameBytes = 4096

// ChatSocket answers each {"message": ...} text frame with a reply frame on the same
// connection. Every frame is classified on its own.
func (s *Server) ChatSocket(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req ChatQueryRequest
		if err := json.Unmarshal(data, &req); err != nil {
			req = ChatQueryRequest{}
		}

		var out any = ErrorResponse{Error: msgMessageRequired}
		if message := req.Normalized(); message != "" {
			out = s.respond(message)
		}

		if err := conn.WriteJSON(out); err != nil {
			s.logger.Error("failed to write to ws connection", zap.Error(err))
			return
		}
	}
}
