package handlers

import (
	"net/http"
	"strconv"

	"election-service/internal/cache"
	"election-service/internal/engine"
	"election-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	engine       *engine.Engine
	resultsCache *cache.ResultsCache
}

func NewResultsHandler(eng *engine.Engine, resultsCache *cache.ResultsCache) *ResultsHandler {
	return &ResultsHandler{engine: eng, resultsCache: resultsCache}
}

// @Summary Get election results
// @Description Tally view: candidates by vote count descending with percentages, withheld until the first vote
// @Tags results
// @Produce json
// @Param electionId query int true "Election ID"
// @Success 200 {object} models.ElectionResults
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /results [get]
func (h *ResultsHandler) GetResults(c *gin.Context) {
	rawID := c.Query("electionId")
	if rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Election ID is required"})
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid electionId"})
		return
	}
	electionID := uint(id)

	if cached, ok := h.resultsCache.Get(c.Request.Context(), electionID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	results, err := h.engine.GetResults(c.Request.Context(), electionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.resultsCache.Set(c.Request.Context(), results)
	c.JSON(http.StatusOK, results)
}
