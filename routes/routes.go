package routes

import (
	"net/http"
	"time"

	"craftedbyher/auth"
	"craftedbyher/controllers"
	"craftedbyher/metrics"
	"craftedbyher/middleware"
	"craftedbyher/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Auth carries the authenticators the route groups need.
type Auth struct {
	Verifier auth.Verifier
	Accounts middleware.AccountResolver
	Managers middleware.ManagerAuthenticator
}

// NewRouter returns an engine with recovery, CORS, request logging, metrics and health routes.
func NewRouter(origins []string) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func RegisterRoutes(r *gin.Engine, h *controllers.Handler, a Auth) {

	api := r.Group("/api")
	{
		api.GET("/products", h.GetProductsPublic)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/products/:id/recommendations", h.GetRecommendations)

		api.GET("/hubs", h.GetHubs)
		api.GET("/hubs/districts", h.GetDistricts)
		api.GET("/hubs/district/:district", h.GetHubsByDistrict)
		api.POST("/hubs/check-pincode", h.CheckPincode)

		api.POST("/hub-managers/login", h.HubManagerLogin)
		api.POST("/hub-managers/logout", h.HubManagerLogout)

		hub := api.Group("/hub-manager")
		hub.Use(middleware.HubManagerAuth(a.Managers))
		{
			hub.GET("/profile", h.HubManagerProfile)
			hub.GET("/dashboard", h.HubDashboard)
			hub.GET("/orders", h.GetHubOrders)
			hub.PUT("/orders/:id/arrived", h.MarkArrived)
			hub.POST("/orders/:orderNumber/otp", h.RegenerateOTP)
			hub.POST("/orders/:orderNumber/verify-otp", h.VerifyPickupOTP)

			hub.GET("/notifications", h.GetNotifications)
			hub.GET("/notifications/unread-count", h.GetUnreadCount)
			hub.PUT("/notifications/read-all", h.MarkAllNotificationsRead)
			hub.PUT("/notifications/:id/read", h.MarkNotificationRead)
			hub.DELETE("/notifications/:id", h.DeleteNotification)
		}

		protected := api.Group("/")
		protected.Use(middleware.FirebaseAuth(a.Verifier, a.Accounts))
		{
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/products", h.GetProductsAdmin)
				admin.PUT("/products/:id/approve", h.ApproveProduct)
				admin.PUT("/products/:id/reject", h.RejectProduct)

				admin.GET("/orders", h.GetOrdersAdmin)
				admin.GET("/orders/:id", h.GetOrderByIDAdmin)
				admin.PUT("/orders/:id/approve", h.ApproveOrder)
				admin.PUT("/orders/:id/dispatch", h.DispatchOrder)
				admin.PUT("/orders/:id/approve-and-dispatch", h.ApproveAndDispatch)
				admin.PUT("/orders/:id/cancel", h.CancelOrderAdmin)

				admin.GET("/hubs", h.GetHubsAdmin)
				admin.POST("/hubs", h.CreateHub)
				admin.GET("/hubs/:hubId/stats", h.GetHubStatsAdmin)
				admin.PUT("/hubs/:hubId/status", h.UpdateHubStatus)
				admin.PUT("/hubs/:hubId/manager", h.AssignHubManager)

				admin.GET("/hub-managers", h.GetHubManagers)
				admin.POST("/hub-managers", h.CreateHubManager)
				admin.PUT("/hub-managers/:managerId/status", h.UpdateHubManagerStatus)

				admin.GET("/seller-applications", h.GetApplicationsAdmin)
				admin.GET("/seller-applications/:id", h.GetApplicationAdmin)
				admin.PUT("/seller-applications/:id/status", h.ReviewApplication)

				admin.PATCH("/users/:uid/role", h.UpdateUserRole)
				admin.PATCH("/users/:uid/status", h.UpdateUserStatus)
			}

			seller := protected.Group("/seller")
			seller.Use(middleware.RequireRole(models.RoleSeller))
			{
				seller.POST("/products", h.CreateSellerProduct)
				seller.GET("/products", h.GetSellerProducts)
				seller.GET("/orders", h.GetSellerOrders)
				seller.PUT("/orders/:id/move-to-hub", h.MoveToHub)
				seller.PUT("/location", h.SaveSellerLocation)
				seller.GET("/hubs/nearest", h.GetNearestHubs)
			}

			user := protected.Group("/user")
			{
				user.POST("/seller-application", h.ApplyToSell)
				user.GET("/seller-application", h.GetMyApplication)

				user.POST("/cart", h.AddToCart)
				user.GET("/cart", h.GetCart)
				user.PUT("/cart/:productId", h.UpdateCart)
				user.DELETE("/cart/:productId", h.RemoveFromCart)

				user.POST("/orders", h.CreateOrder)
				user.GET("/orders", h.GetOrders)
				user.GET("/orders/:id", h.GetOrder)
				user.GET("/orders/:id/tracking", h.TrackOrder)
				user.PUT("/orders/:id/cancel", h.CancelOrder)
				user.POST("/orders/:id/payment", h.ConfirmPayment)

				user.GET("/wishlist", h.GetWishlist)
				user.DELETE("/wishlist", h.ClearWishlist)
				user.GET("/wishlist/check/:productId", h.CheckWishlist)
				user.POST("/wishlist/:productId", h.AddToWishlist)
				user.DELETE("/wishlist/:productId", h.RemoveFromWishlist)

				user.GET("/notifications", h.GetNotifications)
				user.GET("/notifications/unread-count", h.GetUnreadCount)
				user.PUT("/notifications/read-all", h.MarkAllNotificationsRead)
				user.PUT("/notifications/:id/read", h.MarkNotificationRead)
				user.DELETE("/notifications/:id", h.DeleteNotification)
			}
		}
	}
}
