package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/afaeffea/salon-bot-tg/internal/config"
	"github.com/afaeffea/salon-bot-tg/internal/session"
)

// SessionHandler persists the chat front-end's multi-step form state.
// Only the bot service talks to these routes, so they are guarded by
// the shared bot token instead of a user JWT.
type SessionHandler struct {
	store  *session.Store
	config *config.Config
}

func NewSessionHandler(store *session.Store, cfg *config.Config) *SessionHandler {
	return &SessionHandler{store: store, config: cfg}
}

func (h *SessionHandler) chatID(c *gin.Context) (int64, bool) {
	if h.config.BotToken == "" || c.GetHeader("X-Bot-Token") != h.config.BotToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_bot_token"})
		return 0, false
	}

	id, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_chat_id"})
		return 0, false
	}
	return id, true
}

func (h *SessionHandler) Get(c *gin.Context) {
	chatID, ok := h.chatID(c)
	if !ok {
		return
	}

	state, err := h.store.Get(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	if state == nil {
		c.JSON(http.StatusOK, gin.H{"state": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *SessionHandler) Set(c *gin.Context) {
	chatID, ok := h.chatID(c)
	if !ok {
		return
	}

	var state session.State
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := h.store.Set(c.Request.Context(), chatID, &state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session saved"})
}

func (h *SessionHandler) Clear(c *gin.Context) {
	chatID, ok := h.chatID(c)
	if !ok {
		return
	}

	if err := h.store.Clear(c.Request.Context(), chatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cleared"})
}
