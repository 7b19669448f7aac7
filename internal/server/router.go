package server

import (
	"rentbid/internal/identity"
	handler "rentbid/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the bidding engine
func SetupRouter(biddingService handler.BiddingServiceInterface, resolver identity.Resolver) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware(resolver))

	biddingHandler := handler.NewBiddingHandler(biddingService)

	sessions := router.Group("/sessions")
	{
		sessions.POST("", biddingHandler.CreateSessionHandler)
		sessions.GET("/:session_id", biddingHandler.GetSessionStateHandler)
		sessions.POST("/:session_id/bids", biddingHandler.SubmitBidHandler)
		sessions.POST("/:session_id/withdraw", biddingHandler.WithdrawSessionHandler)
		sessions.POST("/:session_id/finalize", biddingHandler.FinalizeSessionHandler)
	}

	return router
}
