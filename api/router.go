// Package api is the HTTP surface of the concierge: chat queries, websocket chat, reservation
// intake, health and metrics, behind a CORS allow-list.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurant-concierge/chat"
	"github.com/imkonsowa/restaurant-concierge/intake"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	engine   *chat.Engine
	intake   intake.Submitter
	logger   *zap.Logger
	origins  map[string]struct{}
	upgrader websocket.Upgrader
}

func NewServer(engine *chat.Engine, submitter intake.Submitter, allowedOrigins []string, logger *zap.Logger) *Server {
	s := &Server{
		engine:  engine,
		intake:  submitter,
		logger:  logger,
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		s.origins[o] = struct{}{}
	}

	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}

	return s
}

// originAllowed reports whether a browser origin may call the API. Requests without an Origin
// header (curl, server to server) are always allowed.
func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := s.origins[origin]

	return ok
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	// disallowed origins get a 403 here and never reach a handler
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: s.originAllowed,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/chat/query", s.ChatQuery)
	r.GET("/chat/ws", s.ChatSocket)
	r.POST("/intake/reservation", s.IntakeReservation)

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("origin", c.GetHeader("Origin")),
		)
	}
}
