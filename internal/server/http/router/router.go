package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/config"
	"github.com/solemart/solemart/internal/server/http/handlers"
	"github.com/solemart/solemart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, db handlers.HealthChecker, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg)))
	engine.Use(middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax).Limit())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, cfg.GatewayWebhookSecret)
	userHandler := handlers.NewUserHandler(facade)
	healthHandler := handlers.NewHealthHandler(db)

	authRequired := middleware.AuthRequired(facade)
	adminRequired := middleware.AdminRequired()

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authRequired, authHandler.Profile)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.GET("/categories/list", productHandler.Categories)
	products.POST("", authRequired, adminRequired, productHandler.Create)
	products.PUT("/:id", authRequired, adminRequired, productHandler.Update)
	products.DELETE("/:id", authRequired, adminRequired, productHandler.Delete)

	cart := api.Group("/cart", authRequired)
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:itemID", cartHandler.UpdateItem)
	cart.DELETE("/items/:itemID", cartHandler.RemoveItem)

	orders := api.Group("/orders", authRequired)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/admin/all", adminRequired, orderHandler.ListAll)
	orders.GET("/admin/stats", adminRequired, orderHandler.Stats)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/cancel", orderHandler.Cancel)
	orders.PUT("/:id/status", adminRequired, orderHandler.UpdateStatus)

	payments := api.Group("/payments")
	payments.POST("/webhook", paymentHandler.Webhook)
	payments.GET("/methods", paymentHandler.Methods)
	payments.POST("/create-intent", authRequired, paymentHandler.CreateIntent)
	payments.POST("/confirm", authRequired, paymentHandler.Confirm)
	payments.POST("/refund", authRequired, paymentHandler.Refund)

	users := api.Group("/users", authRequired)
	users.GET("/wishlist", userHandler.Wishlist)
	users.POST("/wishlist/:productID", userHandler.AddToWishlist)
	users.DELETE("/wishlist/:productID", userHandler.RemoveFromWishlist)

	admin := api.Group("/admin", authRequired, adminRequired)
	admin.GET("/users", userHandler.ListUsers)

	return engine
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return corsCfg
}
