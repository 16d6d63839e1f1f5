package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketflowai/ticketflow/middleware"
	"github.com/ticketflowai/ticketflow/websocket"
)

type WSHandler struct {
	hub *websocket.Hub
}

func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Documents upgrades to a websocket that streams document status events.
// Browsers cannot set an Authorization header on the upgrade request, so the
// bearer token travels as a query parameter.
func (h *WSHandler) Documents(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	if _, err := middleware.ParseToken(tokenStr); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	h.hub.Serve(c.Writer, c.Request)
}
