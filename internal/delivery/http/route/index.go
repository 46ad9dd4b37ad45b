package route

import (
	"database/sql"

	httpHandler "swap-market/internal/delivery/http/handler"
	"swap-market/internal/delivery/http/middleware"
	mongorepo "swap-market/internal/repository/mongodb"
	repo "swap-market/internal/repository/postgresql"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "swap-market/docs"
)

func SetupRoute(app *gin.Engine, db *sql.DB, mongoClient *mongo.Client, mongoDatabase string) {
	// --- REPOSITORIES ---
	userRepo := repo.NewUserRepository(db)
	itemRepo := repo.NewItemRepository(db)
	cartRepo := repo.NewCartRepository(db)
	orderRepo := repo.NewOrderRepository(db)
	barterRepo := repo.NewBarterRepository(db)
	followRepo := repo.NewFollowRepository(db)
	reviewRepo := repo.NewReviewRepository(db)
	logRepo := mongorepo.NewLogRepository(mongoClient, mongoDatabase)

	// --- SERVICES ---
	authService := service.NewAuthService(userRepo)
	itemService := service.NewItemService(itemRepo)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, itemRepo, logRepo)
	barterService := service.NewBarterService(barterRepo, itemRepo, logRepo)
	notificationService := service.NewNotificationService(logRepo)
	socialService := service.NewSocialService(followRepo, reviewRepo, userRepo, logRepo)

	// --- HANDLERS ---
	authHandler := httpHandler.NewAuthHandler(authService)
	itemHandler := httpHandler.NewItemHandler(itemService)
	cartHandler := httpHandler.NewCartHandler(cartService)
	orderHandler := httpHandler.NewOrderHandler(orderService)
	barterHandler := httpHandler.NewBarterHandler(barterService)
	notificationHandler := httpHandler.NewNotificationHandler(notificationService)
	socialHandler := httpHandler.NewSocialHandler(socialService)

	api := app.Group("/api")

	app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(0),
	))

	// --- Authentication & Profile ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/profile", middleware.AuthRequired(), authHandler.Profile)

	// --- Listings (Seller) ---
	items := api.Group("/items", middleware.AuthRequired())
	items.POST("", itemHandler.CreateItem)
	items.GET("/my", itemHandler.GetMyItems)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	// --- Marketplace (Public) ---
	market := api.Group("/market")
	market.GET("/items", itemHandler.GetMarketplaceItems)
	market.GET("/items/:id", itemHandler.GetItemDetail)

	// --- Cart ---
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddToCart)
	cart.PUT("/items/:id", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", cartHandler.RemoveFromCart)

	// --- Orders ---
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.GetMyOrders)
	orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	orders.POST("/:id/shipping", orderHandler.InputShippingReceipt)
	orders.GET("/:id/tracking", orderHandler.GetOrderTracking)

	// --- Barter Negotiation ---
	barters := api.Group("/barters", middleware.AuthRequired())
	barters.POST("", barterHandler.CreateBarterOffer)
	barters.GET("", barterHandler.GetUserBarters)
	barters.GET("/:id", barterHandler.GetBarter)
	barters.GET("/:id/history", barterHandler.GetBarterStatusHistory)
	barters.POST("/:id/counter", barterHandler.CreateCounterOffer)
	barters.POST("/:id/accept", barterHandler.AcceptBarterOffer)
	barters.POST("/:id/reject", barterHandler.RejectBarterOffer)
	barters.POST("/:id/cancel", barterHandler.CancelBarterOffer)
	barters.POST("/:id/complete", barterHandler.CompleteBarterExchange)

	// --- Notifications ---
	notifications := api.Group("/notifications", middleware.AuthRequired())
	notifications.GET("", notificationHandler.GetMyNotifications)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)

	// --- Social ---
	users := api.Group("/users")
	users.POST("/:id/follow", middleware.AuthRequired(), socialHandler.Follow)
	users.DELETE("/:id/follow", middleware.AuthRequired(), socialHandler.Unfollow)
	users.GET("/:id/followers", socialHandler.GetFollowers)
	users.GET("/:id/following", socialHandler.GetFollowing)
	users.GET("/:id/reviews", socialHandler.GetUserReviews)
	api.POST("/reviews", middleware.AuthRequired(), socialHandler.CreateReview)
}
