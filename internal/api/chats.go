package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/chat"
)

func chatIdentity(c *gin.Context) chat.Identity {
	return chat.Identity{
		UserID: callerID(c),
		Email:  c.GetString(auth.ContextEmail),
		Role:   c.GetString(auth.ContextRole),
	}
}

type CreateChatRequest struct {
	PropertyID string `json:"propertyId"`
	AgentID    *int64 `json:"agentId"`
}

func (h *Handler) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	created, err := h.chats.Create(req.PropertyID, req.AgentID, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": created})
}

func (h *Handler) GetChat(c *gin.Context) {
	found, err := h.chats.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": found})
}

type PostMessageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) PostChatMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	message, err := h.chats.PostMessage(c.Param("id"), req.Text, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": message})
}

type CloseChatRequest struct {
	Price string `json:"price"`
	Notes string `json:"notes"`
}

func (h *Handler) CloseChat(c *gin.Context) {
	// Closing with an empty body is fine; the deal defaults kick in.
	var req CloseChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	deal, err := h.chats.Close(c.Param("id"), req.Price, req.Notes, chatIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Chat closed and deal created", "data": deal})
}
