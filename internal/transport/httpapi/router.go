package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hieutran/moneykeeper/internal/transport/httpapi/handler"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
	"github.com/hieutran/moneykeeper/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	CategoryHandler    *handler.CategoryHandler
	BudgetHandler      *handler.BudgetHandler
	GoalHandler        *handler.GoalHandler
	BillHandler        *handler.BillHandler
	DebtHandler        *handler.DebtHandler
	AssetHandler       *handler.AssetHandler
	AdvisorHandler     *handler.AdvisorHandler
	ReportHandler      *handler.ReportHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	if cfg.HealthHandler != nil {
		r.Get("/health/live", cfg.HealthHandler.Liveness)
		r.Get("/health/ready", cfg.HealthHandler.Readiness)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.AuthHandler != nil {
					r.Get("/auth/me", cfg.AuthHandler.Me)
				}

				// Wallet routes
				if cfg.WalletHandler != nil {
					r.Post("/wallets", cfg.WalletHandler.CreateWallet)
					r.Get("/wallets", cfg.WalletHandler.GetWallets)
					r.Get("/wallets/{id}", cfg.WalletHandler.GetWallet)
					r.Put("/wallets/{id}", cfg.WalletHandler.UpdateWallet)
					r.Delete("/wallets/{id}", cfg.WalletHandler.DeleteWallet)
				}

				// Transaction routes
				if cfg.TransactionHandler != nil {
					r.Post("/transactions", cfg.TransactionHandler.CreateTransaction)
					r.Get("/transactions", cfg.TransactionHandler.GetTransactions)
					r.Get("/transactions/summary", cfg.TransactionHandler.GetMonthlySummary)
					r.Get("/transactions/{id}", cfg.TransactionHandler.GetTransaction)
					r.Put("/transactions/{id}", cfg.TransactionHandler.UpdateTransaction)
					r.Delete("/transactions/{id}", cfg.TransactionHandler.DeleteTransaction)
				}

				// Category routes
				if cfg.CategoryHandler != nil {
					r.Get("/categories", cfg.CategoryHandler.GetCategories)
					r.Post("/categories", cfg.CategoryHandler.CreateCategory)
					r.Delete("/categories/{name}", cfg.CategoryHandler.DeleteCategory)
				}

				// Budget routes
				if cfg.BudgetHandler != nil {
					r.Get("/budgets", cfg.BudgetHandler.GetBudgets)
					r.Put("/budgets", cfg.BudgetHandler.SetBudget)
					r.Get("/budgets/report", cfg.BudgetHandler.GetBudgetReport)
					r.Get("/budgets/jars", cfg.BudgetHandler.GetJarsReport)
					r.Put("/budgets/planned-income", cfg.BudgetHandler.SetPlannedIncome)
					r.Delete("/budgets/{category}", cfg.BudgetHandler.DeleteBudget)
				}

				// Savings goal routes
				if cfg.GoalHandler != nil {
					r.Post("/goals", cfg.GoalHandler.CreateGoal)
					r.Get("/goals", cfg.GoalHandler.GetGoals)
					r.Get("/goals/{id}", cfg.GoalHandler.GetGoal)
					r.Delete("/goals/{id}", cfg.GoalHandler.DeleteGoal)
					r.Post("/goals/{id}/deposit", cfg.GoalHandler.DepositGoal)
					r.Post("/goals/{id}/withdraw", cfg.GoalHandler.WithdrawGoal)
				}

				// Recurring bill routes
				if cfg.BillHandler != nil {
					r.Post("/bills", cfg.BillHandler.CreateBill)
					r.Get("/bills", cfg.BillHandler.GetBills)
					r.Get("/bills/{id}", cfg.BillHandler.GetBill)
					r.Put("/bills/{id}", cfg.BillHandler.UpdateBill)
					r.Delete("/bills/{id}", cfg.BillHandler.DeleteBill)
					r.Post("/bills/{id}/pay", cfg.BillHandler.PayBill)
				}

				// Debt routes
				if cfg.DebtHandler != nil {
					r.Post("/debts", cfg.DebtHandler.CreateDebt)
					r.Get("/debts", cfg.DebtHandler.GetDebts)
					r.Get("/debts/{id}", cfg.DebtHandler.GetDebt)
					r.Post("/debts/{id}/settle", cfg.DebtHandler.SettleDebt)
					r.Delete("/debts/{id}", cfg.DebtHandler.DeleteDebt)
				}

				// Asset routes
				if cfg.AssetHandler != nil {
					r.Route("/assets", func(r chi.Router) {
						r.Post("/", cfg.AssetHandler.CreateAsset)
						r.Get("/", cfg.AssetHandler.GetAssets)
						r.Get("/portfolio", cfg.AssetHandler.GetPortfolio)
						r.Get("/{id}", cfg.AssetHandler.GetAsset)
						r.Put("/{id}", cfg.AssetHandler.UpdateAsset)
						r.Put("/{id}/price", cfg.AssetHandler.UpdateAssetPrice)
						r.Delete("/{id}", cfg.AssetHandler.DeleteAsset)
					})
				}

				// Advisor routes
				if cfg.AdvisorHandler != nil {
					r.Route("/advisor", func(r chi.Router) {
						r.Post("/evaluate-deal", cfg.AdvisorHandler.EvaluateDeal)
						r.Post("/stress-test", cfg.AdvisorHandler.StressTest)
						r.Get("/health", cfg.AdvisorHandler.GetHealth)
						r.Post("/consult", cfg.AdvisorHandler.Consult)
						r.Post("/tools/scan-receipt", cfg.AdvisorHandler.ScanReceipt)
						r.Post("/tools/suggest-category", cfg.AdvisorHandler.SuggestCategory)
						r.Post("/tools/voice-entry", cfg.AdvisorHandler.ParseVoiceEntry)
					})
				}

				// Export and backup routes
				if cfg.ReportHandler != nil {
					r.Get("/reports/export/csv", cfg.ReportHandler.ExportCSV)
					r.Get("/reports/backup", cfg.ReportHandler.ExportBackup)
					r.Post("/reports/backup", cfg.ReportHandler.ImportBackup)
				}
			})
		}
	})

	return r
}
