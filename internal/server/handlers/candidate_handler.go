package handlers

import (
	"net/http"

	"election-service/internal/engine"
	"election-service/internal/ports/models"
	"election-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	engine *engine.Engine
}

func NewCandidateHandler(eng *engine.Engine) *CandidateHandler {
	return &CandidateHandler{engine: eng}
}

// @Summary Add a candidate
// @Description Add a candidate to an existing election
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body models.AddCandidateRequest true "Candidate data"
// @Success 201 {object} models.Candidate
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /elections/{id}/candidates [post]
func (h *CandidateHandler) AddCandidate(c *gin.Context) {
	electionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.AddCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidate, err := h.engine.AddCandidate(c.Request.Context(), electionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// @Summary List candidates
// @Description List an election's candidates in insertion order
// @Tags candidates
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {array} models.Candidate
// @Failure 404 {object} map[string]string
// @Router /elections/{id}/candidates [get]
func (h *CandidateHandler) GetCandidates(c *gin.Context) {
	electionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	candidates, err := h.engine.ListCandidates(c.Request.Context(), electionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}
