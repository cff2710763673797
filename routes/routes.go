package routes

import (
	"net/http"
	"time"

	"streamafrica/handlers"
	"streamafrica/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFunnelRoutes registers the session state machine endpoints.
func RegisterFunnelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/funnel")
	{
		api.POST("/session", hb.StartSessionHandler)

		// Everything past session creation requires the session token.
		api.Use(middleware.SessionMiddleware())
		api.GET("/session", hb.GetSessionHandler)
		api.POST("/navigate", hb.NavigateHandler)
		api.POST("/back", hb.BackHandler)
		api.GET("/redirect", hb.RedirectHandler)
	}
}

// RegisterOnboardingRoutes registers the signup form endpoints.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.Use(middleware.SessionMiddleware())
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterDashboardRoutes registers the demo dashboard endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.SessionMiddleware())
		api.GET("/state", hb.DashboardStateHandler)
		api.POST("/action", hb.DashboardActionHandler)
		api.POST("/activate", hb.ActivateHandler)
	}
}

// RegisterPaymentRoutes registers the payment step endpoints. The cashier
// callback stays outside the session group; the gateway posts to it
// directly.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payment/opay/callback", hb.OpayCallbackHandler)

	api := r.Group("/api/payment")
	{
		api.Use(middleware.SessionMiddleware())
		api.GET("/methods", hb.PaymentMethodsHandler)
		api.GET("/state", hb.PaymentStateHandler)
		api.POST("/card/init", hb.CardInitHandler)
		api.POST("/card/callback", hb.CardCallbackHandler)
		api.POST("/transfer/start", hb.TransferStartHandler)
		api.POST("/transfer/bank", hb.SelectBankHandler)
		api.POST("/transfer/proof", hb.UploadProofHandler)
		api.POST("/transfer/confirm", hb.ConfirmTransferHandler)
		api.POST("/opay/start", hb.OpayStartHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Stream Africa"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFunnelRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
