package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account risk tiers.
const (
	LEVEL_FRESH    = "fresh"
	LEVEL_WARNING  = "warning"
	LEVEL_CRITICAL = "critical"
)

// AccountStatus classifies a party's account by recency and balance.
type AccountStatus struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Level string `json:"level"` // fresh, warning, critical
}

// PartyBalance is one party's position in one currency. The calculator
// returns one of these per supported currency even when the balance is zero,
// so callers can tell "settled" apart from "no data".
type PartyBalance struct {
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	LastDate        time.Time       `json:"last_date"`
	DaysSinceLastOp int             `json:"days_since_last_op"`
	PendingCount    int             `json:"pending_count"`
	Status          AccountStatus   `json:"status"`
}

// BudgetSummary is the balance-sheet snapshot for one currency.
type BudgetSummary struct {
	Currency        string          `json:"currency"`
	CustomerDebts   decimal.Decimal `json:"customer_debts"`
	SupplierCredits decimal.Decimal `json:"supplier_credits"`
	SupplierDebts   decimal.Decimal `json:"supplier_debts"`
	CustomerCredits decimal.Decimal `json:"customer_credits"`
	Assets          decimal.Decimal `json:"assets"`
	Liabilities     decimal.Decimal `json:"liabilities"`
	Cash            decimal.Decimal `json:"cash"`
	Net             decimal.Decimal `json:"net"`
	CollectionRatio decimal.Decimal `json:"collection_ratio"`
}

// DebtorAccount is one row of the debts report: a party folded together with
// their balance in the report's currency.
type DebtorAccount struct {
	PersonID   int64           `json:"person_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	PersonType string          `json:"person_type"` // عميل | مورد
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	Days       int             `json:"days"`
	Status     AccountStatus   `json:"status"`
}

// LedgerSnapshot is everything the finance core consumes, loaded in one go.
// The core has no awareness of where the collections came from.
type LedgerSnapshot struct {
	Customers       []Customer
	Suppliers       []Supplier
	Sales           []Sale
	Purchases       []Purchase
	Vouchers        []Voucher
	Expenses        []Expense
	OpeningBalances []OpeningBalance
}

// FinancialSummary is the date-ranged sales vs expenses view for one currency.
type FinancialSummary struct {
	Currency      string          `json:"currency"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}
