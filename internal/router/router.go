package router

import (
	"time"

	"ludoarena/config"
	"ludoarena/internal/handler"
	"ludoarena/internal/middleware"
	"ludoarena/internal/repository"
	"ludoarena/internal/service"
	"ludoarena/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	walletSvc := service.NewWalletService(db, userRepo, transactionRepo, cfg.Platform.FeePercent)
	roomSvc := service.NewRoomService(db, roomRepo, userRepo, walletSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	roomHandler := handler.NewRoomHandler(roomSvc, roomRepo)
	walletHandler := handler.NewWalletHandler(walletSvc, cloud)
	uploadHandler := handler.NewUploadHandler(cloud)
	adminHandler := handler.NewAdminHandler(roomRepo, userRepo, walletSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		rooms := api.Group("/rooms")
		rooms.Use(authMw)
		{
			rooms.POST("/create", roomHandler.Create)
			rooms.GET("/open", roomHandler.ListOpen)
			rooms.GET("/ongoing", roomHandler.ListRunning)
			rooms.GET("/running", roomHandler.ListRunning)
			rooms.POST("/:id/join", roomHandler.Join)
			rooms.PATCH("/:id/result", roomHandler.SubmitResult)
			rooms.PATCH("/:id/cancel", roomHandler.Cancel)
			rooms.POST("/:id/admin-decision", adminMw, roomHandler.AdminDecide)
			rooms.PATCH("/:id", roomHandler.SetRoomCode)
			rooms.DELETE("/:id", roomHandler.Delete)
			rooms.GET("/:id", roomHandler.Get)
		}
		api.GET("/games/history", authMw, roomHandler.History)

		api.GET("/wallet", authMw, walletHandler.GetBalance)
		transactions := api.Group("/transactions")
		transactions.Use(authMw)
		{
			transactions.GET("", walletHandler.History)
			transactions.GET("/pending", walletHandler.Pending)
			transactions.POST("/request", walletHandler.RequestTopUp)
			transactions.POST("/:id/process", adminMw, walletHandler.ProcessTopUp)
		}

		api.POST("/upload", authMw, uploadHandler.UploadScreenshot)

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/summary", adminHandler.Summary)
			admin.GET("/rooms", adminHandler.ListRooms)
			admin.GET("/games/running", adminHandler.RunningGames)
			admin.GET("/games/disputed", adminHandler.DisputedGames)
			admin.GET("/games/completed", adminHandler.CompletedGames)
			admin.GET("/transactions/pending", adminHandler.PendingTransactions)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	return r
}
