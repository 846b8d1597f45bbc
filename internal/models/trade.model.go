package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents the sales table. A returned sale stays on file for the
// audit trail but contributes nothing to balances or cash.
type Sale struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Currency     string          `json:"currency"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"` // نقدي | آجل
	Date         time.Time       `json:"date"`
	IsReturned   bool            `json:"is_returned"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Purchase represents the purchases table
type Purchase struct {
	ID           int64           `json:"id"`
	SupplierID   int64           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Currency     string          `json:"currency"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"` // نقدي | آجل
	Date         time.Time       `json:"date"`
	IsReturned   bool            `json:"is_returned"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Voucher is a receipt (قبض) or payment (دفع) that reduces a party's
// outstanding balance regardless of the originating sale's status.
type Voucher struct {
	ID         int64           `json:"id"`
	PersonID   int64           `json:"person_id"`
	PersonType string          `json:"person_type"` // عميل | مورد
	PersonName string          `json:"person_name,omitempty"`
	Type       string          `json:"type"` // قبض | دفع
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Expense reduces cash only, never a party balance.
type Expense struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// Waste records spoiled qat stock written off outside the ledger proper.
type Waste struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OpeningBalance establishes a party's starting position as its own entity.
// The balance calculator consumes it folded into the credit ledger.
type OpeningBalance struct {
	ID          int64           `json:"id"`
	PersonID    int64           `json:"person_id"`
	PersonType  string          `json:"person_type"`  // عميل | مورد
	BalanceType string          `json:"balance_type"` // مدين | دائن
	PersonName  string          `json:"person_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ActivityLog is an append-only audit line written by mutating handlers.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Type      string    `json:"type"` // success, warning, info
	CreatedAt time.Time `json:"created_at"`
}
