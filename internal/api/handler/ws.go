package handler

import (
	"net/http"
	"strings"

	"prepgogo/backend/internal/interviewhub"
	"prepgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// bearerToken extracts the session token from the Authorization header, or
// from the token query parameter since browser WebSocket clients cannot set
// headers.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// ServeWebSocket authenticates the handshake and upgrades the connection into
// a live session client. A connection without a valid token is refused before
// any room interaction.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	identity, err := h.Auth.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &interviewhub.WebSocketClient{
		ConnID:   uuid.New().String(),
		UserID:   identity.UserID,
		Username: identity.Username,
		Hub:      h.Hub,
		Conn:     conn,
		Send:     make(chan models.Event, 256),
	}

	h.Hub.RegisterCh <- client

	client.Run()
}
