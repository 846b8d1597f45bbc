// Package finance derives account status, per-party balances and the global
// budget snapshot from raw ledger collections. Everything here is pure:
// inputs are never mutated, no I/O, and the reference time is an explicit
// argument, so identical snapshots always produce identical reports.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

// NoActivityDays is the recency sentinel for a party with no dated activity.
const NoActivityDays = 999

var hundred = decimal.NewFromInt(100)

// DaysSince returns the whole days elapsed between t and now, or the
// no-activity sentinel when t is unset.
func DaysSince(t time.Time, now time.Time) int {
	if t.IsZero() {
		return NoActivityDays
	}
	return int(now.Sub(t) / (24 * time.Hour))
}

// StatusFor maps recency and balance to a risk tier. First match wins:
// settled accounts are fresh regardless of age.
func StatusFor(days int, amount decimal.Decimal) models.AccountStatus {
	switch {
	case amount.IsZero():
		return models.AccountStatus{Label: "settled", Color: "text-slate-400", Icon: "✅", Level: models.LEVEL_FRESH}
	case days <= 3:
		return models.AccountStatus{Label: "very active", Color: "text-emerald-500", Icon: "⚡", Level: models.LEVEL_FRESH}
	case days <= 7:
		return models.AccountStatus{Label: "stable", Color: "text-sky-500", Icon: "👍", Level: models.LEVEL_FRESH}
	case days <= 15:
		return models.AccountStatus{Label: "slightly late", Color: "text-amber-500", Icon: "⏳", Level: models.LEVEL_WARNING}
	default:
		return models.AccountStatus{Label: "critical account", Color: "text-rose-500", Icon: "⚠️", Level: models.LEVEL_CRITICAL}
	}
}

// CustomerBalances computes one customer's outstanding position in every
// supported currency. Positive means the customer owes the agency. Returned
// sales are inert; vouchers of the receipt direction reduce the balance.
func CustomerBalances(customerID int64, sales []models.Sale, vouchers []models.Voucher, now time.Time) []models.PartyBalance {
	balances := make([]models.PartyBalance, 0, len(models.SupportedCurrencies))

	for _, cur := range models.SupportedCurrencies {
		var creditTotal, receiptTotal decimal.Decimal
		var lastDate time.Time
		pending := 0

		for _, s := range sales {
			if s.CustomerID != customerID || s.Currency != cur || s.IsReturned {
				continue
			}
			if s.Date.After(lastDate) {
				lastDate = s.Date
			}
			if s.Status == models.TRX_CREDIT {
				creditTotal = creditTotal.Add(s.Total)
				pending++
			}
		}

		for _, v := range vouchers {
			if v.PersonID != customerID || v.PersonType != models.PERSON_CUSTOMER {
				continue
			}
			// Any voucher for the party counts toward recency, even outside
			// this currency or direction.
			if v.Date.After(lastDate) {
				lastDate = v.Date
			}
			if v.Type == models.VOUCHER_RECEIPT && v.Currency == cur {
				receiptTotal = receiptTotal.Add(v.Amount)
			}
		}

		balance := creditTotal.Sub(receiptTotal)
		days := DaysSince(lastDate, now)
		balances = append(balances, models.PartyBalance{
			Currency:        cur,
			Amount:          balance,
			LastDate:        lastDate,
			DaysSinceLastOp: days,
			PendingCount:    pending,
			Status:          StatusFor(days, balance),
		})
	}

	return balances
}

// SupplierBalances is the mirror of CustomerBalances: positive means the
// agency owes the supplier, and payment vouchers reduce the balance.
func SupplierBalances(supplierID int64, purchases []models.Purchase, vouchers []models.Voucher, now time.Time) []models.PartyBalance {
	balances := make([]models.PartyBalance, 0, len(models.SupportedCurrencies))

	for _, cur := range models.SupportedCurrencies {
		var creditTotal, paymentTotal decimal.Decimal
		var lastDate time.Time
		pending := 0

		for _, p := range purchases {
			if p.SupplierID != supplierID || p.Currency != cur || p.IsReturned {
				continue
			}
			if p.Date.After(lastDate) {
				lastDate = p.Date
			}
			if p.Status == models.TRX_CREDIT {
				creditTotal = creditTotal.Add(p.Total)
				pending++
			}
		}

		for _, v := range vouchers {
			if v.PersonID != supplierID || v.PersonType != models.PERSON_SUPPLIER {
				continue
			}
			if v.Date.After(lastDate) {
				lastDate = v.Date
			}
			if v.Type == models.VOUCHER_PAYMENT && v.Currency == cur {
				paymentTotal = paymentTotal.Add(v.Amount)
			}
		}

		balance := creditTotal.Sub(paymentTotal)
		days := DaysSince(lastDate, now)
		balances = append(balances, models.PartyBalance{
			Currency:        cur,
			Amount:          balance,
			LastDate:        lastDate,
			DaysSinceLastOp: days,
			PendingCount:    pending,
			Status:          StatusFor(days, balance),
		})
	}

	return balances
}

// CashFlow derives the realized cash position for one currency from
// cash-basis activity: cash sales and receipt vouchers in, cash purchases,
// payment vouchers and expenses out. Credit activity never touches it.
func CashFlow(currency string, sales []models.Sale, purchases []models.Purchase, vouchers []models.Voucher, expenses []models.Expense) decimal.Decimal {
	var cashIn, cashOut decimal.Decimal

	for _, s := range sales {
		if s.Currency == currency && s.Status == models.TRX_CASH && !s.IsReturned {
			cashIn = cashIn.Add(s.Total)
		}
	}
	for _, p := range purchases {
		if p.Currency == currency && p.Status == models.TRX_CASH && !p.IsReturned {
			cashOut = cashOut.Add(p.Total)
		}
	}
	for _, v := range vouchers {
		if v.Currency != currency {
			continue
		}
		switch v.Type {
		case models.VOUCHER_RECEIPT:
			cashIn = cashIn.Add(v.Amount)
		case models.VOUCHER_PAYMENT:
			cashOut = cashOut.Add(v.Amount)
		}
	}
	for _, e := range expenses {
		if e.Currency == currency {
			cashOut = cashOut.Add(e.Amount)
		}
	}

	return cashIn.Sub(cashOut)
}

// GlobalBudget produces one balance-sheet snapshot per supported currency
// across the whole customer and supplier population. It recomputes from the
// full in-memory snapshot on every call; data volumes here are small-business
// sized and the functions carry no cached state.
func GlobalBudget(
	customers []models.Customer,
	suppliers []models.Supplier,
	sales []models.Sale,
	purchases []models.Purchase,
	vouchers []models.Voucher,
	expenses []models.Expense,
	now time.Time,
) []models.BudgetSummary {
	summaries := make([]models.BudgetSummary, 0, len(models.SupportedCurrencies))

	for _, cur := range models.SupportedCurrencies {
		var customerDebts, customerCredits, supplierDebts, supplierCredits decimal.Decimal

		for _, c := range customers {
			bal := balanceIn(cur, CustomerBalances(c.ID, sales, vouchers, now))
			switch bal.Sign() {
			case 1:
				customerDebts = customerDebts.Add(bal)
			case -1:
				customerCredits = customerCredits.Add(bal.Abs())
			}
		}
		for _, s := range suppliers {
			bal := balanceIn(cur, SupplierBalances(s.ID, purchases, vouchers, now))
			switch bal.Sign() {
			case 1:
				supplierDebts = supplierDebts.Add(bal)
			case -1:
				supplierCredits = supplierCredits.Add(bal.Abs())
			}
		}

		cash := CashFlow(cur, sales, purchases, vouchers, expenses)
		assets := customerDebts.Add(supplierCredits)
		liabilities := supplierDebts.Add(customerCredits)
		net := cash.Add(assets).Sub(liabilities)

		// Liquidity indicator: how much of the near-term claimable value is
		// already cash. The denominator keeps the upstream zero-check as is.
		var collectionRatio decimal.Decimal
		if claimable := cash.Add(assets); claimable.IsPositive() {
			collectionRatio = cash.Div(claimable).Mul(hundred)
		}

		summaries = append(summaries, models.BudgetSummary{
			Currency:        cur,
			CustomerDebts:   customerDebts,
			SupplierCredits: supplierCredits,
			SupplierDebts:   supplierDebts,
			CustomerCredits: customerCredits,
			Assets:          assets,
			Liabilities:     liabilities,
			Cash:            cash,
			Net:             net,
			CollectionRatio: collectionRatio,
		})
	}

	return summaries
}

// FoldOpeningBalances merges opening balances into the credit ledger as
// synthetic credit-status entries, so the balance calculators see a party's
// prior position without the cash flow ever being touched. Debit customer
// balances and credit supplier balances carry positive totals; the opposite
// sides carry negative ones. The originals are not modified.
func FoldOpeningBalances(sales []models.Sale, purchases []models.Purchase, openings []models.OpeningBalance) ([]models.Sale, []models.Purchase) {
	outSales := make([]models.Sale, len(sales), len(sales)+len(openings))
	copy(outSales, sales)
	outPurchases := make([]models.Purchase, len(purchases), len(purchases)+len(openings))
	copy(outPurchases, purchases)

	for _, ob := range openings {
		switch ob.PersonType {
		case models.PERSON_CUSTOMER:
			total := ob.Amount
			if ob.BalanceType == models.BALANCE_CREDIT {
				total = total.Neg()
			}
			outSales = append(outSales, models.Sale{
				ID:         -ob.ID,
				CustomerID: ob.PersonID,
				Currency:   ob.Currency,
				Total:      total,
				Status:     models.TRX_CREDIT,
				Date:       ob.Date,
				Notes:      ob.Notes,
			})
		case models.PERSON_SUPPLIER:
			total := ob.Amount
			if ob.BalanceType == models.BALANCE_DEBIT {
				total = total.Neg()
			}
			outPurchases = append(outPurchases, models.Purchase{
				ID:         -ob.ID,
				SupplierID: ob.PersonID,
				Currency:   ob.Currency,
				Total:      total,
				Status:     models.TRX_CREDIT,
				Date:       ob.Date,
				Notes:      ob.Notes,
			})
		}
	}

	return outSales, outPurchases
}

// balanceIn picks the balance amount for one currency out of a calculator
// result. The calculators always emit every supported currency.
func balanceIn(currency string, balances []models.PartyBalance) decimal.Decimal {
	for _, b := range balances {
		if b.Currency == currency {
			return b.Amount
		}
	}
	return decimal.Decimal{}
}
