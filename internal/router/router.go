package router

import (
	"fmt"
	"strings"

	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/config"
	adminhandlers "github.com/artisanhub/internal/http/handlers/admin"
	artisanhandlers "github.com/artisanhub/internal/http/handlers/artisan"
	publichandlers "github.com/artisanhub/internal/http/handlers/public"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with every route mounted under /api
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	artisanHandler := artisanhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := cache.KeyPrefix()
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts, retry in %d seconds",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware())
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(c.Metrics.Handler()))
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)

		api.POST("/auth/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.Register)
		api.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		api.POST("/auth/logout", publicHandler.Logout)

		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/featured", publicHandler.ListFeaturedProducts)
		api.GET("/products/search", publicHandler.SearchProducts)
		api.GET("/products/category/:category", publicHandler.ListProductsByCategory)
		api.GET("/products/:id", publicHandler.GetProduct)

		api.GET("/reviews/product/:productId", publicHandler.ListProductReviews)

		authed := api.Group("")
		authed.Use(AuthMiddleware(c.AuthService), RBACMiddleware(c.AuthzService))
		{
			authed.GET("/auth/profile", publicHandler.GetProfile)
			authed.PUT("/auth/profile", publicHandler.UpdateProfile)
			authed.PUT("/auth/change-password", publicHandler.ChangePassword)
			authed.GET("/auth/verify", publicHandler.Verify)

			authed.POST("/products", publicHandler.CreateProduct)
			authed.PUT("/products/:id", publicHandler.UpdateProduct)
			authed.DELETE("/products/:id", publicHandler.DeleteProduct)

			authed.GET("/cart", publicHandler.GetCart)
			authed.GET("/cart/summary", publicHandler.GetCartSummary)
			authed.GET("/cart/validate", publicHandler.ValidateCart)
			authed.POST("/cart/add", publicHandler.AddCartItem)
			authed.PUT("/cart/item/:productId", publicHandler.UpdateCartItem)
			authed.DELETE("/cart/item/:productId", publicHandler.RemoveCartItem)
			authed.DELETE("/cart/clear", publicHandler.ClearCart)

			authed.POST("/orders", publicHandler.CreateOrder)
			authed.GET("/orders", publicHandler.ListOrders)
			authed.GET("/orders/:id", publicHandler.GetOrder)
			authed.PUT("/orders/:id/cancel", publicHandler.CancelOrder)

			authed.POST("/reviews", publicHandler.CreateReview)
			authed.GET("/reviews/user", publicHandler.ListMyReviews)
			authed.PUT("/reviews/:id", publicHandler.UpdateReview)
			authed.DELETE("/reviews/:id", publicHandler.DeleteReview)
			authed.POST("/reviews/:id/helpful", publicHandler.MarkReviewHelpful)

			authed.GET("/wishlist", publicHandler.GetWishlist)
			authed.POST("/wishlist/add", publicHandler.AddToWishlist)
			authed.DELETE("/wishlist/remove/:productId", publicHandler.RemoveFromWishlist)
			authed.DELETE("/wishlist/clear", publicHandler.ClearWishlist)
			authed.GET("/wishlist/check/:productId", publicHandler.CheckWishlist)

			authed.GET("/notifications", publicHandler.ListNotifications)
			authed.PUT("/notifications/:id/read", publicHandler.MarkNotificationRead)

			artisan := authed.Group("/artisan")
			{
				artisan.GET("/dashboard/stats", artisanHandler.DashboardStats)
				artisan.GET("/analytics", artisanHandler.Analytics)
				artisan.GET("/products", artisanHandler.ListProducts)
				artisan.PUT("/products/:productId/status", artisanHandler.SetProductStatus)
				artisan.PUT("/products/:productId/featured", artisanHandler.SetProductFeatured)
				artisan.GET("/profile", artisanHandler.GetProfile)
				artisan.PUT("/profile", artisanHandler.UpdateProfile)
				artisan.GET("/orders", artisanHandler.ListOrders)
				artisan.PUT("/orders/:id/status", artisanHandler.UpdateOrderStatus)
			}

			admin := authed.Group("/admin")
			{
				admin.PUT("/reviews/:id/hidden", adminHandler.SetReviewHidden)
				admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
				admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			}
		}
	}

	return r
}
