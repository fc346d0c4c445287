package report

import (
	"time"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/asset"
	"github.com/hieutran/moneykeeper/internal/module/bill"
	"github.com/hieutran/moneykeeper/internal/module/budget"
	"github.com/hieutran/moneykeeper/internal/module/debt"
	"github.com/hieutran/moneykeeper/internal/module/goal"
	"github.com/hieutran/moneykeeper/internal/platform/category"
	"github.com/hieutran/moneykeeper/internal/platform/wallet"
)

// BackupVersion is bumped when the backup layout changes incompatibly
const BackupVersion = 1

// Backup is a full snapshot of one user's data, self-contained enough to be
// restored into an empty account.
type Backup struct {
	Version          int                        `json:"version"`
	ExportedAt       time.Time                  `json:"exported_at"`
	Transactions     []*ledger.Transaction      `json:"transactions"`
	Wallets          []*wallet.Wallet           `json:"wallets"`
	Assets           []*asset.Asset             `json:"assets"`
	Debts            []*debt.Debt               `json:"debts"`
	SavingsGoals     []*goal.SavingsGoal        `json:"savings_goals"`
	RecurringBills   []*bill.RecurringBill      `json:"recurring_bills"`
	CategoryBudgets  []*budget.CategoryBudget   `json:"category_budgets"`
	PlannedIncomes   []*budget.PlannedIncome    `json:"planned_incomes"`
	CustomCategories []*category.CustomCategory `json:"custom_categories"`
}
