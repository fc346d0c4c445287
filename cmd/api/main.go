package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hieutran/moneykeeper/internal/infra/gateway/genai"
	"github.com/hieutran/moneykeeper/internal/infra/postgres"
	infraRedis "github.com/hieutran/moneykeeper/internal/infra/redis"
	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/advisor"
	"github.com/hieutran/moneykeeper/internal/module/asset"
	"github.com/hieutran/moneykeeper/internal/module/bill"
	"github.com/hieutran/moneykeeper/internal/module/budget"
	"github.com/hieutran/moneykeeper/internal/module/debt"
	"github.com/hieutran/moneykeeper/internal/module/goal"
	"github.com/hieutran/moneykeeper/internal/module/report"
	"github.com/hieutran/moneykeeper/internal/platform/category"
	"github.com/hieutran/moneykeeper/internal/platform/user"
	"github.com/hieutran/moneykeeper/internal/platform/wallet"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/handler"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
	"github.com/hieutran/moneykeeper/pkg/config"
	"github.com/hieutran/moneykeeper/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting MoneyKeeper API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for snapshot and reply caching
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	cache := infraRedis.NewCache(redisClient, log)

	// Load jar allocation scheme
	jarsCfg, err := config.LoadJarsConfig(cfg.JarsConfigPath)
	if err != nil {
		log.Error("Failed to load jars config", "error", err, "path", cfg.JarsConfigPath)
		os.Exit(1)
	}
	log.Info("Jars config loaded", "jars", len(jarsCfg.JarKeys()))

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	walletRepo := postgres.NewWalletRepository(db.Pool)
	ledgerRepo := postgres.NewLedgerRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	budgetRepo := postgres.NewBudgetRepository(db.Pool)
	goalRepo := postgres.NewGoalRepository(db.Pool)
	billRepo := postgres.NewBillRepository(db.Pool)
	debtRepo := postgres.NewDebtRepository(db.Pool)
	assetRepo := postgres.NewAssetRepository(db.Pool)
	reportStore := postgres.NewReportStore(db.Pool)

	// Initialize services
	userSvc := user.NewService(userRepo, log)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	ledgerSvc := ledger.NewService(ledgerRepo, walletRepo)
	walletSvc := wallet.NewService(walletRepo, ledgerRepo)
	categorySvc := category.NewService(categoryRepo)
	budgetSvc := budget.NewService(budgetRepo, ledgerSvc, jarsCfg)
	goalSvc := goal.NewService(goalRepo, ledgerSvc)
	billSvc := bill.NewService(billRepo, ledgerSvc)
	debtSvc := debt.NewService(debtRepo, ledgerSvc)
	assetSvc := asset.NewService(assetRepo)
	reportSvc := report.NewService(reportStore, ledgerSvc)

	// Initialize AI gateway (optional; the advisor degrades without it)
	var (
		aiClient advisor.AIClient
		aiTools  handler.AIToolsInterface
	)
	if cfg.GenAIAPIKey != "" {
		adapter := genai.NewAdapter(genai.NewClient(cfg.GenAIAPIKey, cfg.GenAIBaseURL, log))
		aiClient = adapter
		aiTools = adapter
		log.Info("AI gateway initialized")
	} else {
		log.Warn("GENAI_API_KEY not configured, AI features disabled")
	}

	advisorSvc := advisor.NewService(
		ledgerSvc,
		assetSvc,
		debtSvc,
		budgetSvc,
		cache,
		aiClient,
		cfg.AdvisorCacheTTL,
		log,
	)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	walletHandler := handler.NewWalletHandler(walletSvc)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	budgetHandler := handler.NewBudgetHandler(budgetSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	billHandler := handler.NewBillHandler(billSvc)
	debtHandler := handler.NewDebtHandler(debtSvc)
	assetHandler := handler.NewAssetHandler(assetSvc)
	advisorHandler := handler.NewAdvisorHandler(advisorSvc, aiTools)
	reportHandler := handler.NewReportHandler(reportSvc)
	healthHandler := handler.NewHealthHandler(db, cache)

	// Create JWT middleware
	jwtMiddleware := middleware.JWTMiddleware(jwtSvc)

	// Determine allowed origins for CORS
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if cfg.IsProduction() {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     allowedOrigins,
		AuthHandler:        authHandler,
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		CategoryHandler:    categoryHandler,
		BudgetHandler:      budgetHandler,
		GoalHandler:        goalHandler,
		BillHandler:        billHandler,
		DebtHandler:        debtHandler,
		AssetHandler:       assetHandler,
		AdvisorHandler:     advisorHandler,
		ReportHandler:      reportHandler,
		HealthHandler:      healthHandler,
		JWTMiddleware:      jwtMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
