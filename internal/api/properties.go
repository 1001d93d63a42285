package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/properties"
)

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) ListProperties(c *gin.Context) {
	filter := properties.ListFilter{
		City: c.Query("city"),
		Type: c.Query("type"),
		Page: pageParam(c),
	}
	if sellerParam := c.Query("sellerId"); sellerParam != "" {
		if sellerID, err := strconv.ParseInt(sellerParam, 10, 64); err == nil {
			filter.SellerID = &sellerID
		}
	}

	result, total, err := h.properties.List(filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{
		"data":     result,
		"total":    total,
		"page":     filter.Page,
		"pageSize": properties.DefaultPageSize,
	})
}

func (h *Handler) TrendingProperties(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := h.properties.Trending(limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": result})
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.properties.GetByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": property})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var input properties.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	property, err := h.properties.Create(callerID(c), c.GetString(auth.ContextRole), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": property})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var input properties.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	property, err := h.properties.Update(c.Param("id"), id, c.GetString(auth.ContextRole), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": property})
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	if err := h.properties.Delete(c.Param("id"), id, c.GetString(auth.ContextRole)); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *Handler) RecoverProperty(c *gin.Context) {
	property, err := h.properties.Recover(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Property recovered successfully", "data": property})
}

func (h *Handler) ListDeletedProperties(c *gin.Context) {
	page := pageParam(c)
	result, total, err := h.properties.ListDeleted(page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{
		"data":     result,
		"total":    total,
		"page":     page,
		"pageSize": properties.DefaultPageSize,
	})
}
