package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/config"
	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/metrics"
	"github.com/kkmjpaibot/sgsh/internal/interfaces/httpserver/requests"
	"github.com/kkmjpaibot/sgsh/internal/interfaces/httpserver/responses"
)

// sessionCookieMaxAge keeps the browser session alive for a week.
const sessionCookieMaxAge = 7 * 24 * 60 * 60

// ChatHandler exposes the conversation endpoints.
type ChatHandler struct {
	cfg     *config.Config
	service *intake.Service
	log     zerolog.Logger
}

func NewChatHandler(cfg *config.Config, service *intake.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "chat-handler").Logger(),
	}
}

// Chat advances one conversation by one turn.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req requests.ChatRequest
	// A malformed or absent body is treated as an empty message, never as a
	// protocol failure.
	_ = c.ShouldBindJSON(&req)

	key := conversation.NewKey(h.sessionID(c), req.TabID)
	reply, stage := h.service.Chat(c.Request.Context(), key, req.Message)
	metrics.TurnsTotal.WithLabelValues(string(stage)).Inc()

	c.JSON(http.StatusOK, responses.ChatResponse{Reply: reply})
}

// Reset drops the conversation for the given tab entirely.
func (h *ChatHandler) Reset(c *gin.Context) {
	var req requests.ResetRequest
	_ = c.ShouldBindJSON(&req)

	key := conversation.NewKey(h.sessionID(c), req.TabID)
	h.service.Reset(key)

	c.JSON(http.StatusOK, responses.StatusResponse{Status: "ok"})
}

// sessionID returns the browser session identifier, assigning a fresh cookie
// on first contact.
func (h *ChatHandler) sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(h.cfg.SessionCookieName); err == nil && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.SetCookie(h.cfg.SessionCookieName, sid, sessionCookieMaxAge, "/", "", false, true)
	return sid
}
