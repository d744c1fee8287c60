package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chatrelay/chatrelay-server/internal/core"
	"github.com/chatrelay/chatrelay-server/internal/proto"
	"github.com/chatrelay/chatrelay-server/internal/store"
)

// APIHandlers provides read-only REST views over presence and history.
type APIHandlers struct {
	registry *core.Registry
	eventLog store.EventLog
	log      *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(registry *core.Registry, eventLog store.EventLog, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		registry: registry,
		eventLog: eventLog,
		log:      logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListParticipants returns the live presence snapshot.
// GET /api/participants
func (h *APIHandlers) ListParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, proto.PresenceData{
		Participants: participantsToData(h.registry.ListActive()),
	})
}

// History returns the full persisted event log.
// GET /api/history
func (h *APIHandlers) History(c *gin.Context) {
	events, err := h.eventLog.ReadAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("read history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read history"})
		return
	}
	c.JSON(http.StatusOK, proto.HistoryData{Events: eventsToData(events)})
}
