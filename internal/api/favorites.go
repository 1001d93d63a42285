package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/favorites"
)

type AddFavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	favorite, err := h.favorites.Add(userID, req.PropertyID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": favorite})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	page := pageParam(c)
	result, total, err := h.favorites.List(userID, page, favorites.DefaultPageSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{
		"data":     result,
		"total":    total,
		"page":     page,
		"pageSize": favorites.DefaultPageSize,
	})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid favorite id"})
		return
	}

	if err := h.favorites.Remove(id, userID); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Favorite removed"})
}
