package handlers

import (
	"net/http"
	"strconv"
	"time"

	"election-service/internal/cache"
	"election-service/internal/engine"
	"election-service/internal/events"
	"election-service/internal/ports/models"
	"election-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ElectionHandler struct {
	engine       *engine.Engine
	publisher    *events.Publisher
	resultsCache *cache.ResultsCache
}

func NewElectionHandler(eng *engine.Engine, publisher *events.Publisher, resultsCache *cache.ResultsCache) *ElectionHandler {
	return &ElectionHandler{
		engine:       eng,
		publisher:    publisher,
		resultsCache: resultsCache,
	}
}

// @Summary Create a new election
// @Description Create a time-boxed election with an empty candidate list
// @Tags elections
// @Accept json
// @Produce json
// @Param request body models.CreateElectionRequest true "Election data"
// @Success 201 {object} models.Election
// @Failure 400 {object} map[string]string
// @Router /elections [post]
func (h *ElectionHandler) CreateElection(c *gin.Context) {
	var req models.CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	election, err := h.engine.CreateElection(c.Request.Context(), req, time.Now().Unix())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, election)
}

// @Summary List all elections
// @Description List every election with its derived status and candidate count
// @Tags elections
// @Produce json
// @Success 200 {array} models.ElectionWithStats
// @Failure 500 {object} map[string]string
// @Router /elections [get]
func (h *ElectionHandler) GetElections(c *gin.Context) {
	elections, err := h.engine.ListElections(c.Request.Context(), time.Now().Unix())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, elections)
}

// @Summary Get one election
// @Description Get a single election with its derived status
// @Tags elections
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} models.ElectionWithStats
// @Failure 404 {object} map[string]string
// @Router /elections/{id} [get]
func (h *ElectionHandler) GetElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	election, err := h.engine.GetElection(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	candidates, err := h.engine.ListCandidates(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ElectionWithStats{
		Election:       *election,
		Status:         election.StatusAt(time.Now().Unix()),
		CandidateCount: len(candidates),
	})
}

// @Summary End an election
// @Description Deactivate an election; the flip is final and idempotent
// @Tags elections
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /elections/{id}/end [post]
func (h *ElectionHandler) EndElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.engine.EndElection(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.resultsCache.Invalidate(c.Request.Context(), id)
	if err := h.publisher.PublishElectionEnded(c.Request.Context(), id, time.Now().Unix()); err != nil {
		// Audit stream is best-effort; the state change already committed.
		c.JSON(http.StatusOK, gin.H{"message": "election ended", "warning": "audit event not published"})
		return
	}

	response.Message(c, http.StatusOK, "election ended")
}

// parseID reads a positive integer path parameter, answering 400 on a
// malformed value.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
