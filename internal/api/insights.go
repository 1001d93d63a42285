package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/insights"
	"homequest/server/internal/models"
)

func (h *Handler) ListCityInsights(c *gin.Context) {
	cities, err := h.insights.ListCities()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": cities})
}

func (h *Handler) GetCityInsight(c *gin.Context) {
	city, err := h.insights.GetCityByName(c.Param("city"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": city})
}

func (h *Handler) ListLocalityInsights(c *gin.Context) {
	localities, err := h.insights.ListLocalities(c.Query("city"), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": localities})
}

func (h *Handler) ListSocietyInsights(c *gin.Context) {
	societies, err := h.insights.ListSocieties(c.Query("city"), c.Query("locality"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": societies})
}

type CreateCityInsightRequest struct {
	City          string  `json:"city"`
	AvgPriceSqFt  float64 `json:"avgPriceSqFt"`
	OneYearGrowth float64 `json:"oneYearGrowth"`
	DemandIndex   float64 `json:"demandIndex"`
}

func (h *Handler) CreateCityInsight(c *gin.Context) {
	var req CreateCityInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	insight, err := h.insights.CreateCity(req.City, req.AvgPriceSqFt, req.OneYearGrowth, req.DemandIndex)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": insight})
}

type CreateLocalityInsightRequest struct {
	City          string  `json:"city"`
	Locality      string  `json:"locality"`
	AvgPriceSqFt  float64 `json:"avgPriceSqFt"`
	OneYearGrowth float64 `json:"oneYearGrowth"`
	TrendComment  string  `json:"trendComment"`
}

func (h *Handler) CreateLocalityInsight(c *gin.Context) {
	var req CreateLocalityInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	insight, err := h.insights.CreateLocality(req.City, req.Locality, req.AvgPriceSqFt, req.OneYearGrowth, req.TrendComment)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, gin.H{"data": insight})
}

func insightID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid insight id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) UpdateCityInsight(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}

	var upd insights.CityUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	insight, err := h.insights.UpdateCity(id, upd, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": insight})
}

func (h *Handler) UpdateLocalityInsight(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}

	var upd insights.LocalityUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	insight, err := h.insights.UpdateLocality(id, upd, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": insight})
}

func (h *Handler) DeleteCityInsight(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}
	if err := h.insights.DeleteCity(id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "City insight deleted"})
}

func (h *Handler) DeleteLocalityInsight(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}
	if err := h.insights.DeleteLocality(id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Locality insight deleted"})
}

// InsightHistory lists the change log for one insight, newest first.
func (h *Handler) InsightHistory(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.insights.History(c.Param("type"), id, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if entries == nil {
		entries = []models.InsightHistory{}
	}
	h.ok(c, http.StatusOK, gin.H{"data": entries})
}

// UndoInsightChange reverts the most recent change to an insight and
// discards the consumed history entry.
func (h *Handler) UndoInsightChange(c *gin.Context) {
	id, ok := insightID(c)
	if !ok {
		return
	}

	insight, err := h.insights.Undo(c.Param("type"), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "Last change undone", "data": insight})
}
