package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetToken mints a session token for a display name. The account is created on
// first contact; an omitted username resolves to "Guest".
func (h *Handler) GetToken(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		username = "Guest"
	}

	userID := uuid.New().String()

	if h.Storage != nil {
		if _, err := h.Storage.SaveUserIfNotExists(userID, username); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	}

	token, err := h.Auth.Issue(userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID, "username": username})
}
