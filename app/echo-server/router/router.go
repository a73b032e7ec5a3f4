package router

import (
	"myTourGuide/internal/middleware"
	"myTourGuide/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh-token", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, middleware.SelfOrAdmin())
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupScenicRoutes(api *echo.Group, handler *rest.ScenicHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	spots := api.Group("/scenic-spots")

	spots.GET("", handler.GetScenicSpots)
	spots.GET("/:id", handler.GetScenicSpotByID)
	spots.POST("", handler.CreateScenicSpot, authRequired, adminOnly)
	spots.PUT("/:id", handler.UpdateScenicSpot, authRequired, adminOnly)
	spots.DELETE("/:id", handler.DeleteScenicSpot, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupAccommodationRoutes(api *echo.Group, handler *rest.AccommodationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	accommodations := api.Group("/accommodations")

	accommodations.GET("", handler.GetAccommodations)
	accommodations.GET("/types", handler.GetAccommodationTypes)
	accommodations.GET("/:id", handler.GetAccommodationByID)
	accommodations.POST("", handler.CreateAccommodation, authRequired, adminOnly)
	accommodations.PUT("/:id", handler.UpdateAccommodation, authRequired, adminOnly)
	accommodations.DELETE("/:id", handler.DeleteAccommodation, authRequired, adminOnly)
}

func SetupCommentRoutes(api *echo.Group, handler *rest.CommentHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/scenic-spots/:id/comments", handler.GetCommentsByScenicID)

	comments := api.Group("/comments", authRequired)
	comments.POST("", handler.CreateComment)
	comments.GET("/mine", handler.GetMyComments)
	comments.DELETE("/:id", handler.DeleteComment)
}

func SetupCollectionRoutes(api *echo.Group, handler *rest.CollectionHandler, authRequired echo.MiddlewareFunc) {
	collections := api.Group("/collections", authRequired)

	collections.GET("", handler.GetMyCollections)
	collections.POST("/:id", handler.AddCollection)
	collections.GET("/:id", handler.IsCollected)
	collections.DELETE("/:id", handler.RemoveCollection)
}

func SetupTicketRoutes(api *echo.Group, handler *rest.TicketHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.GET("/scenic-spots/:id/tickets", handler.GetTicketsByScenicID)

	tickets := api.Group("/tickets")
	tickets.GET("/hot", handler.GetHotTickets)
	tickets.GET("/:id", handler.GetTicketByID)
	tickets.POST("", handler.CreateTicket, authRequired, adminOnly)
	tickets.PUT("/:id", handler.UpdateTicket, authRequired, adminOnly)
	tickets.DELETE("/:id", handler.DeleteTicket, authRequired, adminOnly)
}

func SetupOrderRoutes(api *echo.Group, handler *rest.OrderHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetMyOrders)
	orders.GET("/:id", handler.GetOrderByID)
	orders.POST("/:id/pay", handler.PayOrder)
	orders.POST("/:id/cancel", handler.CancelOrder)
	orders.POST("/:id/complete", handler.CompleteOrder)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.GetRecommendations)
	reco.GET("/ids", handler.GetRecommendationIDs)
}

func SetupAssistantRoutes(api *echo.Group, handler *rest.AssistantHandler, authRequired echo.MiddlewareFunc) {
	chat := api.Group("/assistant", authRequired)

	chat.POST("/chat", handler.Chat)
	chat.POST("/sessions", handler.CreateSession)
	chat.GET("/sessions", handler.GetMySessions)
	chat.GET("/sessions/:id/messages", handler.GetSessionMessages)
}
