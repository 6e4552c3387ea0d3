package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kkmjpaibot/sgsh/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates route registration for the chat surface.
type Routes struct {
	handlers *handlers.Provider
}

func New(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches the conversation endpoints.
func (r *Routes) Register(router gin.IRouter) {
	router.POST("/chat", r.handlers.Chat.Chat)
	router.POST("/reset", r.handlers.Chat.Reset)
}
