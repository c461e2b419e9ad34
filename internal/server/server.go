package server

import (
	"context"
	"net/http"

	"clubledger/internal/auth"
	"clubledger/internal/config"
	"clubledger/internal/court"
	"clubledger/internal/notify"
	"clubledger/internal/reservation"
	"clubledger/internal/settings"
	"clubledger/internal/user"
	"clubledger/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, rdb *redis.Client, notifyService *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	courtRepo := court.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)
	settingsRepo := settings.NewRepository(db)

	// The watcher reads through its own repository handle; the handle the
	// handlers write through notifies the watcher.
	watcher := wallet.NewWatcher(rdb, wallet.NewRepository(db, nil))
	walletRepo := wallet.NewRepository(db, watcher)
	mutator := wallet.NewMutator(db, watcher)
	history := wallet.NewHistoryService(walletRepo, reservationRepo, courtRepo, userRepo)

	userHandler := user.NewHandler(userRepo, cfg.JWTSecret)
	courtHandler := court.NewHandler(courtRepo)
	settingsHandler := settings.NewHandler(settingsRepo)
	walletHandler := wallet.NewHandler(walletRepo, mutator, history, watcher, settingsRepo, userRepo, notifyService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/courts", courtHandler.ListCourts)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.GET("/wallets", walletHandler.ListWallets)
		admin.POST("/wallets", walletHandler.CreateWallet)
		admin.GET("/wallets/stream", walletHandler.StreamWallets)
		admin.GET("/wallets/candidates", walletHandler.ListCandidates)
		admin.GET("/wallets/:userID", walletHandler.GetWallet)
		admin.DELETE("/wallets/:userID", walletHandler.DeleteWallet)
		admin.POST("/wallets/:userID/balance", walletHandler.AddBalance)
		admin.PUT("/wallets/:userID/limit", walletHandler.SetLimit)
		admin.PUT("/wallets/:userID/block", walletHandler.SetBlocked)
		admin.POST("/wallets/:userID/reset", walletHandler.ResetWallet)
		admin.GET("/wallets/:userID/history", walletHandler.TransactionHistory)
		admin.POST("/wallets/:userID/undo", walletHandler.UndoTransaction)

		admin.POST("/transfers", walletHandler.Transfer)

		admin.POST("/courts", courtHandler.CreateCourt)

		admin.GET("/settings", settingsHandler.GetSettings)
		admin.PUT("/settings", settingsHandler.UpdateSettings)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-notification", TestNotification(notifyService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
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
