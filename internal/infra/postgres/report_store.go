package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/budget"
	"github.com/hieutran/moneykeeper/internal/module/report"
)

// ReportStore snapshots and restores a user's full dataset for backups
type ReportStore struct {
	pool *pgxpool.Pool

	wallets    *WalletRepository
	ledger     *LedgerRepository
	assets     *AssetRepository
	debts      *DebtRepository
	goals      *GoalRepository
	bills      *BillRepository
	budgets    *BudgetRepository
	categories *CategoryRepository
}

// NewReportStore creates a new PostgreSQL report store
func NewReportStore(pool *pgxpool.Pool) *ReportStore {
	return &ReportStore{
		pool:       pool,
		wallets:    NewWalletRepository(pool),
		ledger:     NewLedgerRepository(pool),
		assets:     NewAssetRepository(pool),
		debts:      NewDebtRepository(pool),
		goals:      NewGoalRepository(pool),
		bills:      NewBillRepository(pool),
		budgets:    NewBudgetRepository(pool),
		categories: NewCategoryRepository(pool),
	}
}

// Snapshot collects everything the user owns into one backup
func (s *ReportStore) Snapshot(ctx context.Context, userID uuid.UUID) (*report.Backup, error) {
	b := &report.Backup{}
	var err error

	if b.Transactions, err = s.ledger.List(ctx, userID, ledger.Filters{}); err != nil {
		return nil, fmt.Errorf("failed to snapshot transactions: %w", err)
	}
	if b.Wallets, err = s.wallets.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot wallets: %w", err)
	}
	if b.Assets, err = s.assets.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot assets: %w", err)
	}
	if b.Debts, err = s.debts.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot debts: %w", err)
	}
	if b.SavingsGoals, err = s.goals.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot goals: %w", err)
	}
	if b.RecurringBills, err = s.bills.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot bills: %w", err)
	}
	if b.CategoryBudgets, err = s.budgets.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot budgets: %w", err)
	}
	if b.CustomCategories, err = s.categories.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot custom categories: %w", err)
	}
	if b.PlannedIncomes, err = s.plannedIncomes(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to snapshot planned incomes: %w", err)
	}
	return b, nil
}

// Restore wipes the user's data and loads the backup in one transaction
func (s *ReportStore) Restore(ctx context.Context, userID uuid.UUID, b *report.Backup) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin restore: %w", err)
	}
	defer tx.Rollback(ctx)

	// Transactions reference wallets and bills, so they go first on delete
	// and last on insert.
	wipe := []string{
		`DELETE FROM transactions WHERE user_id = $1`,
		`DELETE FROM recurring_bills WHERE user_id = $1`,
		`DELETE FROM wallets WHERE user_id = $1`,
		`DELETE FROM assets WHERE user_id = $1`,
		`DELETE FROM debts WHERE user_id = $1`,
		`DELETE FROM savings_goals WHERE user_id = $1`,
		`DELETE FROM category_budgets WHERE user_id = $1`,
		`DELETE FROM planned_incomes WHERE user_id = $1`,
		`DELETE FROM custom_categories WHERE user_id = $1`,
	}
	for _, q := range wipe {
		if _, err := tx.Exec(ctx, q, userID); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	for _, w := range b.Wallets {
		_, err := tx.Exec(ctx, `
			INSERT INTO wallets (id, user_id, name, type, initial_balance, credit_limit, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			w.ID, w.UserID, w.Name, w.Type, w.InitialBalance, w.CreditLimit, w.CreatedAt, w.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore wallet: %w", err)
		}
	}

	for _, rb := range b.RecurringBills {
		_, err := tx.Exec(ctx, `
			INSERT INTO recurring_bills (id, user_id, name, amount, category, due_day, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rb.ID, rb.UserID, rb.Name, rb.Amount, rb.Category, rb.DueDay, rb.CreatedAt, rb.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore bill: %w", err)
		}
	}

	for _, t := range b.Transactions {
		_, err := tx.Exec(ctx, `
			INSERT INTO transactions (`+txColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			t.ID, t.UserID, t.Amount, t.Type, t.Category, t.Note, t.OccurredAt,
			t.WalletID, t.RecurringBillID, t.Source, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore transaction: %w", err)
		}
	}

	for _, a := range b.Assets {
		_, err := tx.Exec(ctx, `
			INSERT INTO assets (id, user_id, name, kind, value, initial_value, quantity, buy_price, current_price, note, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			a.ID, a.UserID, a.Name, a.Kind, a.Value, a.InitialValue, a.Quantity,
			a.BuyPrice, a.CurrentPrice, a.Note, a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore asset: %w", err)
		}
	}

	for _, d := range b.Debts {
		_, err := tx.Exec(ctx, `
			INSERT INTO debts (id, user_id, person, amount, type, due_date, note, is_paid, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			d.ID, d.UserID, d.Person, d.Amount, d.Type, d.DueDate, d.Note, d.IsPaid, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore debt: %w", err)
		}
	}

	for _, g := range b.SavingsGoals {
		_, err := tx.Exec(ctx, `
			INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, deadline, image, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			g.ID, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Image, g.CreatedAt, g.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore goal: %w", err)
		}
	}

	for _, cb := range b.CategoryBudgets {
		_, err := tx.Exec(ctx, `
			INSERT INTO category_budgets (id, user_id, category, "limit", created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			cb.ID, cb.UserID, cb.Category, cb.Limit, cb.CreatedAt, cb.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore budget: %w", err)
		}
	}

	for _, pi := range b.PlannedIncomes {
		_, err := tx.Exec(ctx, `
			INSERT INTO planned_incomes (user_id, year, month, amount)
			VALUES ($1, $2, $3, $4)`,
			pi.UserID, pi.Year, int(pi.Month), pi.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to restore planned income: %w", err)
		}
	}

	for _, cc := range b.CustomCategories {
		_, err := tx.Exec(ctx, `
			INSERT INTO custom_categories (id, user_id, name, created_at)
			VALUES ($1, $2, $3, $4)`,
			cc.ID, cc.UserID, cc.Name, cc.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore custom category: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

func (s *ReportStore) plannedIncomes(ctx context.Context, userID uuid.UUID) ([]*budget.PlannedIncome, error) {
	query := `
		SELECT user_id, year, month, amount
		FROM planned_incomes
		WHERE user_id = $1
		ORDER BY year, month
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*budget.PlannedIncome
	for rows.Next() {
		p := &budget.PlannedIncome{}
		if err := rows.Scan(&p.UserID, &p.Year, &p.Month, &p.Amount); err != nil {
			return nil, err
		}
		incomes = append(incomes, p)
	}
	return incomes, rows.Err()
}
