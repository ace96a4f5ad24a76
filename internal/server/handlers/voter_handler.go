package handlers

import (
	"net/http"
	"strconv"
	"time"

	"election-service/internal/engine"
	"election-service/internal/ports/models"
	"election-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// voterAddressHeader carries the externally authenticated voter
// identity. The wallet layer in front of this service verifies it; the
// engine treats it as opaque.
const voterAddressHeader = "X-Voter-Address"

type VoterHandler struct {
	engine *engine.Engine
}

func NewVoterHandler(eng *engine.Engine) *VoterHandler {
	return &VoterHandler{engine: eng}
}

// @Summary Register a voter
// @Description Register the calling voter identity for an election with a student id
// @Tags voters
// @Accept json
// @Produce json
// @Param X-Voter-Address header string true "Voter address"
// @Param request body models.RegisterVoterRequest true "Registration data"
// @Success 201 {object} models.Voter
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /voters [post]
func (h *VoterHandler) RegisterVoter(c *gin.Context) {
	address, ok := voterAddress(c)
	if !ok {
		return
	}

	var req models.RegisterVoterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voter, err := h.engine.RegisterVoter(c.Request.Context(), req.ElectionID, address, req.StudentID, time.Now().Unix())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, voter)
}

// @Summary Get voter information
// @Description Look up a registration record by election and address
// @Tags voters
// @Produce json
// @Param electionId query int true "Election ID"
// @Param address query string true "Voter address"
// @Success 200 {object} map[string]models.Voter
// @Failure 404 {object} map[string]string
// @Router /voters [get]
func (h *VoterHandler) GetVoter(c *gin.Context) {
	electionID, address, ok := voterQuery(c)
	if !ok {
		return
	}

	voter, err := h.engine.GetVoter(c.Request.Context(), electionID, address)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voter": voter})
}

func voterAddress(c *gin.Context) (string, bool) {
	address := c.GetHeader(voterAddressHeader)
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voter address is required"})
		return "", false
	}
	return address, true
}

func voterQuery(c *gin.Context) (uint, string, bool) {
	rawID := c.Query("electionId")
	address := c.Query("address")
	if rawID == "" || address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Election ID and voter address are required"})
		return 0, "", false
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid electionId"})
		return 0, "", false
	}
	return uint(id), address, true
}
