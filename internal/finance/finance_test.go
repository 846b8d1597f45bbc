package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func d(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func creditSale(id, customerID int64, currency string, total int64, daysAgo int) models.Sale {
	return models.Sale{
		ID:         id,
		CustomerID: customerID,
		Currency:   currency,
		Total:      d(total),
		Status:     models.TRX_CREDIT,
		Date:       testNow.AddDate(0, 0, -daysAgo),
	}
}

func cashSale(id, customerID int64, currency string, total int64, daysAgo int) models.Sale {
	s := creditSale(id, customerID, currency, total, daysAgo)
	s.Status = models.TRX_CASH
	return s
}

func creditPurchase(id, supplierID int64, currency string, total int64, daysAgo int) models.Purchase {
	return models.Purchase{
		ID:         id,
		SupplierID: supplierID,
		Currency:   currency,
		Total:      d(total),
		Status:     models.TRX_CREDIT,
		Date:       testNow.AddDate(0, 0, -daysAgo),
	}
}

func receipt(id, customerID int64, currency string, amount int64, daysAgo int) models.Voucher {
	return models.Voucher{
		ID:         id,
		PersonID:   customerID,
		PersonType: models.PERSON_CUSTOMER,
		Type:       models.VOUCHER_RECEIPT,
		Amount:     d(amount),
		Currency:   currency,
		Date:       testNow.AddDate(0, 0, -daysAgo),
	}
}

func payment(id, supplierID int64, currency string, amount int64, daysAgo int) models.Voucher {
	return models.Voucher{
		ID:         id,
		PersonID:   supplierID,
		PersonType: models.PERSON_SUPPLIER,
		Type:       models.VOUCHER_PAYMENT,
		Amount:     d(amount),
		Currency:   currency,
		Date:       testNow.AddDate(0, 0, -daysAgo),
	}
}

func balanceFor(t *testing.T, balances []models.PartyBalance, currency string) models.PartyBalance {
	t.Helper()
	for _, b := range balances {
		if b.Currency == currency {
			return b
		}
	}
	t.Fatalf("no balance record for currency %s", currency)
	return models.PartyBalance{}
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, NoActivityDays, DaysSince(time.Time{}, testNow))
	assert.Equal(t, 0, DaysSince(testNow, testNow))
	assert.Equal(t, 5, DaysSince(testNow.AddDate(0, 0, -5), testNow))
	assert.Equal(t, 0, DaysSince(testNow.Add(-23*time.Hour), testNow))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		days   int
		amount decimal.Decimal
		label  string
		level  string
	}{
		{"settled wins over any age", NoActivityDays, d(0), "settled", models.LEVEL_FRESH},
		{"same day", 0, d(100), "very active", models.LEVEL_FRESH},
		{"three days", 3, d(100), "very active", models.LEVEL_FRESH},
		{"a week", 7, d(100), "stable", models.LEVEL_FRESH},
		{"two weeks", 15, d(100), "slightly late", models.LEVEL_WARNING},
		{"beyond two weeks", 16, d(100), "critical account", models.LEVEL_CRITICAL},
		{"long idle negative balance", NoActivityDays, d(-500), "critical account", models.LEVEL_CRITICAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := StatusFor(tt.days, tt.amount)
			assert.Equal(t, tt.label, st.Label)
			assert.Equal(t, tt.level, st.Level)
		})
	}
}

func TestCustomerBalancesNoActivity(t *testing.T) {
	balances := CustomerBalances(1, nil, nil, testNow)
	require.Len(t, balances, len(models.SupportedCurrencies))

	for _, b := range balances {
		assert.True(t, b.Amount.IsZero(), "currency %s", b.Currency)
		assert.Equal(t, "settled", b.Status.Label)
		assert.Equal(t, models.LEVEL_FRESH, b.Status.Level)
		assert.Equal(t, NoActivityDays, b.DaysSinceLastOp)
		assert.Zero(t, b.PendingCount)
		assert.True(t, b.LastDate.IsZero())
	}
}

func TestCustomerBalancesSingleCreditSale(t *testing.T) {
	sale := creditSale(1, 7, models.CURRENCY_YER, 20000, 2)

	balances := CustomerBalances(7, []models.Sale{sale}, nil, testNow)
	yer := balanceFor(t, balances, models.CURRENCY_YER)

	assert.True(t, yer.Amount.Equal(d(20000)))
	assert.Equal(t, 1, yer.PendingCount)
	assert.Equal(t, 2, yer.DaysSinceLastOp)
	assert.Equal(t, models.LEVEL_FRESH, yer.Status.Level)
	assert.Equal(t, sale.Date, yer.LastDate)

	// Other currencies report zero-but-settled rather than being absent.
	sar := balanceFor(t, balances, models.CURRENCY_SAR)
	assert.True(t, sar.Amount.IsZero())
	assert.Equal(t, "settled", sar.Status.Label)
}

func TestCustomerBalancesReceiptSettles(t *testing.T) {
	sales := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 20000, 2)}
	vouchers := []models.Voucher{receipt(1, 7, models.CURRENCY_YER, 20000, 1)}

	yer := balanceFor(t, CustomerBalances(7, sales, vouchers, testNow), models.CURRENCY_YER)

	assert.True(t, yer.Amount.IsZero())
	assert.Equal(t, "settled", yer.Status.Label)
	assert.Equal(t, models.LEVEL_FRESH, yer.Status.Level)
	// pendingCount stays a raw credit-invoice count, vouchers do not clear it.
	assert.Equal(t, 1, yer.PendingCount)
}

func TestCustomerBalancesCashSaleDoesNotAddDebt(t *testing.T) {
	sales := []models.Sale{cashSale(1, 7, models.CURRENCY_YER, 5000, 1)}

	yer := balanceFor(t, CustomerBalances(7, sales, nil, testNow), models.CURRENCY_YER)

	assert.True(t, yer.Amount.IsZero())
	assert.Zero(t, yer.PendingCount)
	// The cash sale still counts as activity.
	assert.Equal(t, 1, yer.DaysSinceLastOp)
}

func TestReturnedSalesAreInert(t *testing.T) {
	base := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 20000, 2)}
	returned := creditSale(2, 7, models.CURRENCY_YER, 999999, 1)
	returned.IsReturned = true

	with := CustomerBalances(7, append(base, returned), nil, testNow)
	without := CustomerBalances(7, base, nil, testNow)
	assert.Equal(t, without, with)

	// Changing any other field of a returned record must not matter either.
	returned.Total = d(123)
	returned.Status = models.TRX_CASH
	again := CustomerBalances(7, append(base, returned), nil, testNow)
	assert.Equal(t, without, again)
}

func TestCurrencyIsolation(t *testing.T) {
	sales := []models.Sale{
		creditSale(1, 7, models.CURRENCY_YER, 20000, 2),
		creditSale(2, 7, models.CURRENCY_SAR, 3000, 1),
	}

	balances := CustomerBalances(7, sales, nil, testNow)
	yer := balanceFor(t, balances, models.CURRENCY_YER)
	sar := balanceFor(t, balances, models.CURRENCY_SAR)

	assert.True(t, yer.Amount.Equal(d(20000)))
	assert.Equal(t, 1, yer.PendingCount)
	assert.True(t, sar.Amount.Equal(d(3000)))
	assert.Equal(t, 1, sar.PendingCount)
}

func TestVoucherRecencyIgnoresCurrencyAndDirection(t *testing.T) {
	sales := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 20000, 20)}
	// A SAR receipt is the customer's most recent activity; it must move the
	// YER recency without reducing the YER balance.
	vouchers := []models.Voucher{receipt(1, 7, models.CURRENCY_SAR, 100, 1)}

	yer := balanceFor(t, CustomerBalances(7, sales, vouchers, testNow), models.CURRENCY_YER)

	assert.True(t, yer.Amount.Equal(d(20000)))
	assert.Equal(t, 1, yer.DaysSinceLastOp)
	assert.Equal(t, models.LEVEL_FRESH, yer.Status.Level)
}

func TestPartyTypeKeepsIDsApart(t *testing.T) {
	// Customer 1 and supplier 1 are different parties; the supplier's payment
	// voucher must not reduce the customer's balance.
	sales := []models.Sale{creditSale(1, 1, models.CURRENCY_YER, 10000, 2)}
	vouchers := []models.Voucher{payment(1, 1, models.CURRENCY_YER, 10000, 1)}

	yer := balanceFor(t, CustomerBalances(1, sales, vouchers, testNow), models.CURRENCY_YER)
	assert.True(t, yer.Amount.Equal(d(10000)))
}

func TestSupplierBalances(t *testing.T) {
	purchases := []models.Purchase{creditPurchase(1, 3, models.CURRENCY_YER, 10000, 4)}

	yer := balanceFor(t, SupplierBalances(3, purchases, nil, testNow), models.CURRENCY_YER)
	assert.True(t, yer.Amount.Equal(d(10000)), "positive = agency owes supplier")
	assert.Equal(t, 1, yer.PendingCount)
	assert.Equal(t, "stable", yer.Status.Label)

	// A payment overshooting the debt flips the balance negative (prepaid).
	vouchers := []models.Voucher{payment(1, 3, models.CURRENCY_YER, 12000, 1)}
	yer = balanceFor(t, SupplierBalances(3, purchases, vouchers, testNow), models.CURRENCY_YER)
	assert.True(t, yer.Amount.Equal(d(-2000)))
}

func TestCashFlow(t *testing.T) {
	sales := []models.Sale{cashSale(1, 7, models.CURRENCY_YER, 5000, 1)}
	expenses := []models.Expense{{Amount: d(1000), Currency: models.CURRENCY_YER, Date: testNow}}

	cash := CashFlow(models.CURRENCY_YER, sales, nil, nil, expenses)
	assert.True(t, cash.Equal(d(4000)))

	// Credit sales and returned cash sales are both invisible to cash.
	sales = append(sales, creditSale(2, 7, models.CURRENCY_YER, 8000, 1))
	ret := cashSale(3, 7, models.CURRENCY_YER, 700, 1)
	ret.IsReturned = true
	sales = append(sales, ret)
	cash = CashFlow(models.CURRENCY_YER, sales, nil, nil, expenses)
	assert.True(t, cash.Equal(d(4000)))
}

func TestCashFlowVouchers(t *testing.T) {
	vouchers := []models.Voucher{
		receipt(1, 7, models.CURRENCY_YER, 3000, 1),
		payment(2, 3, models.CURRENCY_YER, 1200, 1),
		receipt(3, 7, models.CURRENCY_SAR, 9999, 1), // other currency, ignored
	}

	cash := CashFlow(models.CURRENCY_YER, nil, nil, vouchers, nil)
	assert.True(t, cash.Equal(d(1800)))
}

func TestGlobalBudgetBalancedBook(t *testing.T) {
	customers := []models.Customer{{ID: 7, Name: "صالح"}}
	suppliers := []models.Supplier{{ID: 3, Name: "مورد صنعاء"}}
	sales := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 10000, 2)}
	purchases := []models.Purchase{creditPurchase(1, 3, models.CURRENCY_YER, 10000, 2)}

	summaries := GlobalBudget(customers, suppliers, sales, purchases, nil, nil, testNow)
	require.Len(t, summaries, len(models.SupportedCurrencies))

	yer := summaries[0]
	require.Equal(t, models.CURRENCY_YER, yer.Currency)
	assert.True(t, yer.CustomerDebts.Equal(d(10000)))
	assert.True(t, yer.SupplierDebts.Equal(d(10000)))
	assert.True(t, yer.Assets.Equal(d(10000)))
	assert.True(t, yer.Liabilities.Equal(d(10000)))
	assert.True(t, yer.Cash.IsZero())
	assert.True(t, yer.Net.IsZero())
	assert.True(t, yer.CollectionRatio.IsZero(), "cash/(cash+assets) = 0/10000")

	for _, s := range summaries[1:] {
		assert.True(t, s.Assets.IsZero(), "currency %s untouched", s.Currency)
		assert.True(t, s.Liabilities.IsZero())
	}
}

func TestGlobalBudgetOverpaidPositions(t *testing.T) {
	customers := []models.Customer{{ID: 7}}
	suppliers := []models.Supplier{{ID: 3}}
	// Customer overpaid by 500 (liability), supplier prepaid by 2000 (asset).
	vouchers := []models.Voucher{
		receipt(1, 7, models.CURRENCY_YER, 500, 1),
		payment(2, 3, models.CURRENCY_YER, 2000, 1),
	}

	yer := GlobalBudget(customers, suppliers, nil, nil, vouchers, nil, testNow)[0]

	assert.True(t, yer.CustomerCredits.Equal(d(500)))
	assert.True(t, yer.SupplierCredits.Equal(d(2000)))
	assert.True(t, yer.Assets.Equal(d(2000)))
	assert.True(t, yer.Liabilities.Equal(d(500)))
	// The vouchers also moved cash: 500 in, 2000 out.
	assert.True(t, yer.Cash.Equal(d(-1500)))
	// net = cash + assets - liabilities = -1500 + 2000 - 500
	assert.True(t, yer.Net.IsZero())
}

func TestGlobalBudgetCollectionRatio(t *testing.T) {
	customers := []models.Customer{{ID: 7}}
	sales := []models.Sale{
		cashSale(1, 7, models.CURRENCY_YER, 5000, 1),
		creditSale(2, 7, models.CURRENCY_YER, 5000, 1),
	}

	yer := GlobalBudget(customers, nil, sales, nil, nil, nil, testNow)[0]

	assert.True(t, yer.Cash.Equal(d(5000)))
	assert.True(t, yer.Assets.Equal(d(5000)))
	assert.True(t, yer.CollectionRatio.Equal(d(50)))
}

func TestGlobalBudgetIdempotent(t *testing.T) {
	customers := []models.Customer{{ID: 7}}
	suppliers := []models.Supplier{{ID: 3}}
	sales := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 10000, 2)}
	purchases := []models.Purchase{creditPurchase(1, 3, models.CURRENCY_SAR, 4000, 9)}
	vouchers := []models.Voucher{receipt(1, 7, models.CURRENCY_YER, 2500, 1)}
	expenses := []models.Expense{{Amount: d(300), Currency: models.CURRENCY_OMR, Date: testNow}}

	first := GlobalBudget(customers, suppliers, sales, purchases, vouchers, expenses, testNow)
	second := GlobalBudget(customers, suppliers, sales, purchases, vouchers, expenses, testNow)
	assert.Equal(t, first, second)
}

func TestFoldOpeningBalances(t *testing.T) {
	openings := []models.OpeningBalance{
		{ID: 1, PersonID: 7, PersonType: models.PERSON_CUSTOMER, BalanceType: models.BALANCE_DEBIT, Amount: d(15000), Currency: models.CURRENCY_YER, Date: testNow.AddDate(0, -1, 0)},
		{ID: 2, PersonID: 8, PersonType: models.PERSON_CUSTOMER, BalanceType: models.BALANCE_CREDIT, Amount: d(4000), Currency: models.CURRENCY_YER, Date: testNow.AddDate(0, -1, 0)},
		{ID: 3, PersonID: 3, PersonType: models.PERSON_SUPPLIER, BalanceType: models.BALANCE_CREDIT, Amount: d(9000), Currency: models.CURRENCY_SAR, Date: testNow.AddDate(0, -2, 0)},
	}

	sales, purchases := FoldOpeningBalances(nil, nil, openings)
	require.Len(t, sales, 2)
	require.Len(t, purchases, 1)

	// Old debit balance shows up as customer debt.
	yer := balanceFor(t, CustomerBalances(7, sales, nil, testNow), models.CURRENCY_YER)
	assert.True(t, yer.Amount.Equal(d(15000)))
	assert.Equal(t, models.LEVEL_CRITICAL, yer.Status.Level)

	// Old credit balance shows up as money the agency owes the customer.
	yer = balanceFor(t, CustomerBalances(8, sales, nil, testNow), models.CURRENCY_YER)
	assert.True(t, yer.Amount.Equal(d(-4000)))

	// Supplier credit side stays positive: agency owes the supplier.
	sar := balanceFor(t, SupplierBalances(3, purchases, nil, testNow), models.CURRENCY_SAR)
	assert.True(t, sar.Amount.Equal(d(9000)))

	// Folded entries are credit-status, so cash is untouched.
	assert.True(t, CashFlow(models.CURRENCY_YER, sales, purchases, nil, nil).IsZero())
	assert.True(t, CashFlow(models.CURRENCY_SAR, sales, purchases, nil, nil).IsZero())
}

func TestFoldOpeningBalancesDoesNotMutateInputs(t *testing.T) {
	sales := []models.Sale{creditSale(1, 7, models.CURRENCY_YER, 100, 1)}
	openings := []models.OpeningBalance{
		{ID: 1, PersonID: 7, PersonType: models.PERSON_CUSTOMER, BalanceType: models.BALANCE_DEBIT, Amount: d(50), Currency: models.CURRENCY_YER, Date: testNow},
	}

	out, _ := FoldOpeningBalances(sales, nil, openings)
	require.Len(t, out, 2)
	assert.Len(t, sales, 1)
	assert.True(t, sales[0].Total.Equal(d(100)))
}
