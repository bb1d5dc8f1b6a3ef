package server

import (
	"context"
	"net/http"

	"github.com/BenedictUkwenya/lifekitbackend/internal/auth"
	"github.com/BenedictUkwenya/lifekitbackend/internal/booking"
	"github.com/BenedictUkwenya/lifekitbackend/internal/catalog"
	"github.com/BenedictUkwenya/lifekitbackend/internal/config"
	"github.com/BenedictUkwenya/lifekitbackend/internal/notification"
	"github.com/BenedictUkwenya/lifekitbackend/internal/review"
	"github.com/BenedictUkwenya/lifekitbackend/internal/wallet"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	router     *gin.Engine
}

type Handlers struct {
	Bookings      *booking.Handler
	Reviews       *review.Handler
	Wallets       *wallet.Handler
	Catalog       *catalog.Handler
	Notifications *notification.Handler
	Queue         *notification.Service
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	// Публичный календарь провайдера, токен не нужен.
	router.GET("/bookings/provider-schedule/:providerID", h.Bookings.ProviderSchedule)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/bookings", h.Bookings.Create)
		protected.PUT("/bookings/:bookingID/status", h.Bookings.Decide)
		protected.PUT("/bookings/:bookingID/complete", h.Bookings.Complete)
		protected.GET("/bookings/client", h.Bookings.ListForClient)
		protected.GET("/bookings/provider", h.Bookings.ListForProvider)

		protected.POST("/reviews", h.Reviews.Submit)
		protected.GET("/reviews/service/:serviceID", h.Reviews.ListByService)

		protected.GET("/wallet", h.Wallets.GetBalance)
		protected.POST("/wallet/topup", h.Wallets.TopUp)
		protected.GET("/wallet/transactions", h.Wallets.ListTransactions)

		protected.GET("/notifications", h.Notifications.List)
		protected.POST("/notifications/:id/read", h.Notifications.MarkRead)

		protected.GET("/services", h.Catalog.ListServices)
		protected.GET("/services/:serviceID", h.Catalog.GetService)
		protected.GET("/services/provider/:providerID", h.Catalog.ListByProvider)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/wallets/:ownerID/withdraw", h.Wallets.AdminWithdraw)
		admin.GET("/notifications/queue", NotificationQueue(h.Queue))
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
