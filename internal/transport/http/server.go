package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chatrelay/chatrelay-server/internal/config"
	"github.com/chatrelay/chatrelay-server/internal/core"
	"github.com/chatrelay/chatrelay-server/internal/store"
)

// NewServer builds the HTTP server: health, WebSocket upgrade, and read-only
// REST views over presence and history.
func NewServer(hub *core.Hub, registry *core.Registry, eventLog store.EventLog, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", NewWSHandler(hub, logger).Handle)

	api := NewAPIHandlers(registry, eventLog, logger)
	router.GET("/api/participants", api.ListParticipants)
	router.GET("/api/history", api.History)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
