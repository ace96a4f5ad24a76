package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"election-service/internal/server/handlers"
	"election-service/internal/server/middleware"
)

// SetupRoutes configures all the routes for the application. Reads are
// public; mutations on elections themselves require the admin JWT,
// while registration and voting authenticate through the externally
// verified voter address.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	electionHandler *handlers.ElectionHandler,
	candidateHandler *handlers.CandidateHandler,
	voterHandler *handlers.VoterHandler,
	voteHandler *handlers.VoteHandler,
	resultsHandler *handlers.ResultsHandler,
) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)

		public.GET("/elections", electionHandler.GetElections)
		public.GET("/elections/:id", electionHandler.GetElection)
		public.GET("/elections/:id/candidates", candidateHandler.GetCandidates)

		public.POST("/voters", voterHandler.RegisterVoter)
		public.GET("/voters", voterHandler.GetVoter)

		public.POST("/votes", voteHandler.CastVote)
		public.GET("/votes", voteHandler.HasVoted)

		public.GET("/results", resultsHandler.GetResults)
	}

	// Admin routes (require JWT authentication)
	admin := router.Group("/api/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	{
		admin.POST("/elections", electionHandler.CreateElection)
		admin.POST("/elections/:id/candidates", candidateHandler.AddCandidate)
		admin.POST("/elections/:id/end", electionHandler.EndElection)
	}
}
