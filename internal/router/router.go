package router

import (
	"haven/internal/handlers"
	"haven/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	communityHandler := handlers.NewCommunityHandler()
	journalHandler := handlers.NewJournalHandler()
	companionHandler := handlers.NewCompanionHandler()
	relaxationHandler := handlers.NewRelaxationHandler()

	api := r.Group("/api")

	// Accounts
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/me", authHandler.Me)

	// Community - reading and posting are open to anonymous visitors
	community := api.Group("/community")
	{
		community.GET("/posts", communityHandler.List)        // post list (mine=1 filters to own)
		community.GET("/posts/:pid", communityHandler.Detail) // post + threaded comments
		community.POST("/posts", communityHandler.CreatePost) // submit a post (anonymous allowed)
		community.POST("/confirm/post", communityHandler.ConfirmPost) // "post anyway" override

		// Commenting requires a signed-in user
		protected := community.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/posts/:pid/comments", communityHandler.CreateComment)
			protected.POST("/confirm/comment", communityHandler.ConfirmComment)
		}
	}

	// Journal
	journal := api.Group("/journal")
	journal.Use(middleware.AuthRequired())
	{
		journal.GET("", journalHandler.List)
		journal.POST("", journalHandler.Create)
		journal.GET("/:jid", journalHandler.Detail)
		journal.PUT("/:jid", journalHandler.Update)
		journal.DELETE("/:jid", journalHandler.Delete)
	}

	// Companion chat
	companion := api.Group("/companion")
	companion.Use(middleware.AuthRequired())
	{
		companion.GET("/sessions", companionHandler.ListSessions)
		companion.GET("/sessions/:sid", companionHandler.SessionDetail)
		companion.POST("/chat", companionHandler.Chat)
	}

	// Relaxation tools
	api.GET("/relaxation/resources", relaxationHandler.ListResources)
}
