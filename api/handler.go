package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurant-concierge/chat"
	"github.com/imkonsowa/restaurant-concierge/metrics"
	"github.com/imkonsowa/restaurant-concierge/models"
	"go.uber.org/zap"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) ChatQuery(c *gin.Context) {
	var req ChatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a body that does not decode has no usable message
		req = ChatQueryRequest{}
	}

	message := req.Normalized()
	if message == "" {
		metrics.ChatRejected.Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMessageRequired})
		return
	}

	c.JSON(http.StatusOK, s.respond(message))
}

func (s *Server) respond(message string) chat.Reply {
	intent, reply := s.engine.Respond(message)
	metrics.ChatIntents.WithLabelValues(string(intent.Name), string(intent.Kind)).Inc()

	s.logger.Debug("chat reply",
		zap.String("intent", string(intent.Name)),
		zap.String("kind", string(intent.Kind)),
	)

	return reply
}

func (s *Server) IntakeReservation(c *gin.Context) {
	var req models.Reservation
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}

	// identity and receive time are assigned server side
	req.ID = ""
	req.ReceivedAt = time.Time{}

	status := s.intake.SubmitReservation(c.Request.Context(), req)

	c.JSON(http.StatusOK, IntakeResponse{Status: string(status)})
}
