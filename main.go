package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"my-expenses-backend/authentication"
	"my-expenses-backend/expense"
	"my-expenses-backend/observability"
	"my-expenses-backend/users"
	"my-expenses-backend/version"
	"my-expenses-backend/wallet"
)

func main() {
	// .env is optional; real env vars take precedence
	_ = godotenv.Load()

	cfg := LoadConfig()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("app_env", cfg.AppEnv),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.DatabaseName),
	)

	// Initialize MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.DatabaseURL)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}

	// Ping the database
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("could not ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB")

	metrics := observability.NewMetrics()
	jwtSecret := []byte(cfg.JWTSecret)

	// Stores and the per-user lock shared by every wallet mutation path
	walletStore := wallet.NewMongoStore(mongoClient, cfg)
	expenseStore := expense.NewMongoStore(mongoClient, cfg)
	locks := wallet.NewUserLock()

	walletService := wallet.NewService(walletStore, locks, logger)
	coordinator := expense.NewCoordinator(expenseStore, walletStore, locks, logger)

	authHandler := authentication.NewHandler(mongoClient, cfg, jwtSecret, logger)
	userHandler := users.NewHandler(mongoClient, cfg, logger)
	walletHandler := wallet.NewHandler(walletService, logger)
	expenseHandler := expense.NewHandler(coordinator, metrics, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())

	r.GET("/metrics", metrics.PrometheusHandler())
	r.GET("/api/version", func(c *gin.Context) {
		info := version.GetInfo()
		info.ServerEnv = cfg.AppEnv
		info.DatabaseName = cfg.DatabaseName
		c.JSON(http.StatusOK, info)
	})

	// Auth routes
	r.POST("/api/register", authHandler.HandleSignup)
	r.POST("/api/login", authHandler.HandleLogin)

	authorized := r.Group("/api")
	authorized.Use(authHandler.AuthMiddleware())
	{
		// Profile routes
		authorized.GET("/profile", userHandler.HandleGetProfile)
		authorized.PUT("/profile", userHandler.HandleUpdateProfile)

		// Expense routes
		authorized.POST("/expenses", expenseHandler.HandleCreateExpense)
		authorized.GET("/expenses", expenseHandler.HandleGetExpenses)
		authorized.GET("/expenses/export", expenseHandler.HandleExportExpenses)
		authorized.GET("/expenses/:id", expenseHandler.HandleGetExpense)
		authorized.PUT("/expenses/:id", expenseHandler.HandleUpdateExpense)
		authorized.DELETE("/expenses/:id", expenseHandler.HandleDeleteExpense)

		// Wallet routes
		authorized.POST("/wallet/initialize", walletHandler.HandleInitializeWallet)
		authorized.GET("/wallet", walletHandler.HandleGetWalletDetails)
		authorized.POST("/wallet/add", walletHandler.HandleAddFunds)
		authorized.POST("/wallet/deduct", walletHandler.HandleDeductFunds)
		authorized.GET("/wallet/transactions", walletHandler.HandleGetTransactionHistory)
		authorized.POST("/wallet/monthly-budget", walletHandler.HandleSetMonthlyBudget)
		authorized.GET("/wallet/monthly-stats", walletHandler.HandleGetMonthlyStats)
		authorized.POST("/wallet/category-limit", walletHandler.HandleSetCategoryLimit)
		authorized.GET("/wallet/alerts", walletHandler.HandleGetSpendingAlerts)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
