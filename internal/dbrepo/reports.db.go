package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

// ReportRepo assembles the read-side snapshots the finance core consumes.
type ReportRepo struct {
	db        *pgxpool.Pool
	customers *CustomerRepo
	suppliers *SupplierRepo
	sales     *SaleRepo
	purchases *PurchaseRepo
	vouchers  *VoucherRepo
	expenses  *ExpenseRepo
	openings  *OpeningBalanceRepo
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{
		db:        db,
		customers: NewCustomerRepo(db),
		suppliers: NewSupplierRepo(db),
		sales:     NewSaleRepo(db),
		purchases: NewPurchaseRepo(db),
		vouchers:  NewVoucherRepo(db),
		expenses:  NewExpenseRepo(db),
		openings:  NewOpeningBalanceRepo(db),
	}
}

// LedgerSnapshot loads every collection the budget aggregation needs. The
// seven selects are independent, so they run concurrently on the pool.
func (r *ReportRepo) LedgerSnapshot(ctx context.Context) (*models.LedgerSnapshot, error) {
	var snap models.LedgerSnapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		customers, _, err := r.customers.ListCustomers(ctx, "", 1, 100000)
		snap.Customers = customers
		return err
	})
	g.Go(func() error {
		suppliers, _, err := r.suppliers.ListSuppliers(ctx, "", 1, 100000)
		snap.Suppliers = suppliers
		return err
	})
	g.Go(func() error {
		sales, err := r.sales.AllSales(ctx)
		snap.Sales = sales
		return err
	})
	g.Go(func() error {
		purchases, err := r.purchases.AllPurchases(ctx)
		snap.Purchases = purchases
		return err
	})
	g.Go(func() error {
		vouchers, err := r.vouchers.AllVouchers(ctx)
		snap.Vouchers = vouchers
		return err
	})
	g.Go(func() error {
		expenses, err := r.expenses.AllExpenses(ctx)
		snap.Expenses = expenses
		return err
	})
	g.Go(func() error {
		openings, err := r.openings.AllOpeningBalances(ctx)
		snap.OpeningBalances = openings
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}
	return &snap, nil
}

// FinancialSummary aggregates non-returned sales against expenses for a date
// range, one row per supported currency.
func (r *ReportRepo) FinancialSummary(ctx context.Context, startDate, endDate string) ([]models.FinancialSummary, error) {
	salesByCur := map[string]decimal.Decimal{}
	expensesByCur := map[string]decimal.Decimal{}

	rows, err := r.db.Query(ctx, `
		SELECT currency, COALESCE(SUM(total), 0)
		FROM sales
		WHERE is_returned = FALSE AND date::date BETWEEN $1 AND $2
		GROUP BY currency
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("sales summary query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cur string
		var total decimal.Decimal
		if err := rows.Scan(&cur, &total); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		salesByCur[cur] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	rows, err = r.db.Query(ctx, `
		SELECT currency, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date::date BETWEEN $1 AND $2
		GROUP BY currency
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("expenses summary query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cur string
		var total decimal.Decimal
		if err := rows.Scan(&cur, &total); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		expensesByCur[cur] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	summaries := make([]models.FinancialSummary, 0, len(models.SupportedCurrencies))
	for _, cur := range models.SupportedCurrencies {
		totalSales := salesByCur[cur]
		totalExpenses := expensesByCur[cur]
		summaries = append(summaries, models.FinancialSummary{
			Currency:      cur,
			TotalSales:    totalSales,
			TotalExpenses: totalExpenses,
			NetProfit:     totalSales.Sub(totalExpenses),
		})
	}
	return summaries, nil
}
