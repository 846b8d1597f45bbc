package api

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

var reportNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func debtSnapshot() *models.LedgerSnapshot {
	daysAgo := func(n int) time.Time { return reportNow.AddDate(0, 0, -n) }
	return &models.LedgerSnapshot{
		Customers: []models.Customer{
			{ID: 1, Name: "صالح", Phone: "777000001"},
			{ID: 2, Name: "هشام", Phone: "777000002"},
		},
		Suppliers: []models.Supplier{
			{ID: 1, Name: "مزرعة حراز", Phone: "777000003"},
		},
		Sales: []models.Sale{
			// fresh debt, two days old
			{ID: 1, CustomerID: 1, Currency: models.CURRENCY_YER, Total: decimal.NewFromInt(20000), Status: models.TRX_CREDIT, Date: daysAgo(2)},
			// stale debt, a month old
			{ID: 2, CustomerID: 2, Currency: models.CURRENCY_YER, Total: decimal.NewFromInt(5000), Status: models.TRX_CREDIT, Date: daysAgo(30)},
		},
		Purchases: []models.Purchase{
			// stale supplier debt, also a month old
			{ID: 1, SupplierID: 1, Currency: models.CURRENCY_YER, Total: decimal.NewFromInt(8000), Status: models.TRX_CREDIT, Date: daysAgo(30)},
		},
	}
}

func TestDebtAccountsCustomerTab(t *testing.T) {
	accounts := debtAccounts(debtSnapshot(), models.CURRENCY_YER, "customer_debts", reportNow)

	require.Len(t, accounts, 2)
	// largest debt first
	assert.Equal(t, int64(1), accounts[0].PersonID)
	assert.True(t, accounts[0].Amount.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, models.LEVEL_FRESH, accounts[0].Status.Level)
	assert.Equal(t, int64(2), accounts[1].PersonID)
	assert.Equal(t, models.LEVEL_CRITICAL, accounts[1].Status.Level)
}

func TestDebtAccountsSupplierTab(t *testing.T) {
	accounts := debtAccounts(debtSnapshot(), models.CURRENCY_YER, "supplier_debts", reportNow)

	require.Len(t, accounts, 1)
	assert.Equal(t, models.PERSON_SUPPLIER, accounts[0].PersonType)
	assert.True(t, accounts[0].Amount.Equal(decimal.NewFromInt(8000)))
}

func TestDebtAccountsCriticalTabIsCustomersOnly(t *testing.T) {
	accounts := debtAccounts(debtSnapshot(), models.CURRENCY_YER, "critical", reportNow)

	// The stale supplier debt stays on its own tab; only the stale
	// customer debt qualifies here.
	require.Len(t, accounts, 1)
	assert.Equal(t, models.PERSON_CUSTOMER, accounts[0].PersonType)
	assert.Equal(t, int64(2), accounts[0].PersonID)
	assert.Equal(t, models.LEVEL_CRITICAL, accounts[0].Status.Level)
}

func TestDebtAccountsCurrencyScoped(t *testing.T) {
	accounts := debtAccounts(debtSnapshot(), models.CURRENCY_SAR, "customer_debts", reportNow)
	assert.Empty(t, accounts)
}
