package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/deals"
)

type CreateDealRequest struct {
	PropertyID string `json:"propertyId"`
	BuyerName  string `json:"buyerName"`
	Price      string `json:"price"`
	Notes      string `json:"notes"`
}

func (h *Handler) CreateDeal(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	deal, err := h.deals.CreateDeal(
		strconv.FormatInt(userID, 10),
		c.GetString(auth.ContextRole),
		req.PropertyID, req.BuyerName, req.Price, req.Notes,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": deal})
}

func (h *Handler) ListDeals(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	page := pageParam(c)
	result, total, err := h.deals.ListDeals(
		strconv.FormatInt(userID, 10),
		c.GetString(auth.ContextRole),
		page, deals.DefaultPageSize,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{
		"data":     result,
		"total":    total,
		"page":     page,
		"pageSize": deals.DefaultPageSize,
	})
}

type CreateOfferRequest struct {
	PropertyID string `json:"propertyId"`
	BuyerName  string `json:"buyerName"`
	OfferPrice string `json:"offerPrice"`
	Message    string `json:"message"`
}

func (h *Handler) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	offer, err := h.deals.CreateOffer(req.PropertyID, req.BuyerName, req.OfferPrice, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": offer})
}

func (h *Handler) ListOffers(c *gin.Context) {
	page := pageParam(c)
	result, total, err := h.deals.ListOffers(page, deals.DefaultPageSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{
		"data":     result,
		"total":    total,
		"page":     page,
		"pageSize": deals.DefaultPageSize,
	})
}
