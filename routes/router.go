package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/controllers"
	"github.com/Sharmake123/som-election-platform/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Uploaded photos are served statically
	router.Static("/uploads", config.UploadsDir)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.POST("/reset-password", controllers.ResetPassword)
	auth.GET("/profile", middleware.Protect(), controllers.GetProfile)
	auth.PUT("/profile", middleware.Protect(), controllers.UpdateProfile)
	auth.PUT("/updatepassword", middleware.Protect(), controllers.UpdatePassword)

	elections := api.Group("/elections")
	elections.Use(middleware.Protect())
	elections.GET("", controllers.ListElections)
	elections.POST("", middleware.AdminOnly(), controllers.CreateElection)
	elections.PUT("/:id", middleware.AdminOnly(), controllers.UpdateElection)
	elections.DELETE("/:id", middleware.AdminOnly(), controllers.DeleteElection)

	candidates := api.Group("/candidates")
	candidates.GET("", middleware.Protect(), middleware.AdminOnly(), controllers.ListCandidates)
	candidates.GET("/showcase", controllers.ShowcaseCandidates)
	candidates.GET("/election/:electionId", middleware.Protect(), controllers.CandidatesForElection)
	candidates.GET("/:id", controllers.GetCandidate)
	candidates.POST("", middleware.Protect(), middleware.AdminOnly(), controllers.CreateCandidate)
	candidates.PUT("/:id", middleware.Protect(), middleware.AdminOnly(), controllers.UpdateCandidate)
	candidates.DELETE("/:id", middleware.Protect(), middleware.AdminOnly(), controllers.DeleteCandidate)

	votes := api.Group("/votes")
	votes.Use(middleware.Protect())
	votes.POST("", controllers.CastVote)
	votes.GET("/myvotes", controllers.MyVotes)
	votes.GET("/results/:electionId", controllers.ElectionResults)
	votes.GET("/voters/:electionId", middleware.AdminOnly(), controllers.VotersForElection)
	votes.GET("/stats/admin", middleware.AdminOnly(), controllers.AdminStats)
	votes.GET("/stats/voter", controllers.VoterStats)

	users := api.Group("/users")
	users.Use(middleware.Protect(), middleware.AdminOnly())
	users.GET("", controllers.ListUsers)
	users.POST("", controllers.CreateUser)
	users.PUT("/:id", controllers.UpdateUser)
	users.PUT("/:id/verify", controllers.VerifyUser)
	users.DELETE("/:id", controllers.DeleteUser)

	messages := api.Group("/messages")
	messages.POST("", controllers.CreateMessage)
	messages.GET("", middleware.Protect(), middleware.AdminOnly(), controllers.ListMessages)

	return router
}
