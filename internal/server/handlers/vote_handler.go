package handlers

import (
	"net/http"
	"time"

	"election-service/internal/cache"
	"election-service/internal/engine"
	"election-service/internal/events"
	"election-service/internal/ports/models"
	"election-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	engine       *engine.Engine
	publisher    *events.Publisher
	resultsCache *cache.ResultsCache
}

func NewVoteHandler(eng *engine.Engine, publisher *events.Publisher, resultsCache *cache.ResultsCache) *VoteHandler {
	return &VoteHandler{
		engine:       eng,
		publisher:    publisher,
		resultsCache: resultsCache,
	}
}

// @Summary Cast a vote
// @Description Record one vote for a candidate by the calling voter identity
// @Tags votes
// @Accept json
// @Produce json
// @Param X-Voter-Address header string true "Voter address"
// @Param request body models.CastVoteRequest true "Vote data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	address, ok := voterAddress(c)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := h.engine.CastVote(c.Request.Context(), req.ElectionID, req.CandidateID, address, time.Now().Unix())
	if err != nil {
		response.Error(c, err)
		return
	}

	// The vote is committed; cache and audit stream follow behind.
	h.resultsCache.Invalidate(c.Request.Context(), req.ElectionID)
	if err := h.publisher.PublishVoteCast(c.Request.Context(), vote); err != nil {
		c.JSON(http.StatusCreated, gin.H{"message": "Vote cast successfully", "warning": "audit event not published"})
		return
	}

	response.Message(c, http.StatusCreated, "Vote cast successfully")
}

// @Summary Check vote status
// @Description Report whether a voter identity has voted in an election
// @Tags votes
// @Produce json
// @Param electionId query int true "Election ID"
// @Param address query string true "Voter address"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /votes [get]
func (h *VoteHandler) HasVoted(c *gin.Context) {
	electionID, address, ok := voterQuery(c)
	if !ok {
		return
	}

	hasVoted, err := h.engine.HasVoted(c.Request.Context(), electionID, address)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasVoted": hasVoted})
}
