package api

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/finance"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

// ReportHandler serves the aggregate views: global budget, debts report and
// the date-ranged financial summary. Each request loads a fresh ledger
// snapshot and recomputes; nothing here is cached.
type ReportHandler struct {
	DB       *dbrepo.ReportRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewReportHandler(db *dbrepo.ReportRepo, infoLog, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetBudgetSummary returns the balance sheet per currency
func (h *ReportHandler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.DB.LedgerSnapshot(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetBudgetSummary:", err)
		utils.ServerError(w, err)
		return
	}

	sales, purchases := finance.FoldOpeningBalances(snap.Sales, snap.Purchases, snap.OpeningBalances)
	summaries := finance.GlobalBudget(snap.Customers, snap.Suppliers, sales, purchases, snap.Vouchers, snap.Expenses, time.Now())

	resp := struct {
		Error   bool                   `json:"error"`
		Message string                 `json:"message"`
		Budget  []models.BudgetSummary `json:"budget"`
	}{
		Error:   false,
		Message: "Success",
		Budget:  summaries,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetDebtsReport lists outstanding positions in one currency. The tab param
// picks the view: customer_debts (they owe us), supplier_debts (we owe them)
// or critical (customer debts stale past the warning window).
func (h *ReportHandler) GetDebtsReport(w http.ResponseWriter, r *http.Request) {
	currency := utils.GetURLParam(r, "currency")
	if currency == "" {
		currency = models.CURRENCY_YER
	}
	switch currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		utils.BadRequest(w, errors.New("unsupported currency"))
		return
	}

	tab := utils.GetURLParam(r, "tab")
	if tab == "" {
		tab = "customer_debts"
	}
	if tab != "customer_debts" && tab != "supplier_debts" && tab != "critical" {
		utils.BadRequest(w, errors.New("tab must be customer_debts, supplier_debts or critical"))
		return
	}

	snap, err := h.DB.LedgerSnapshot(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDebtsReport:", err)
		utils.ServerError(w, err)
		return
	}

	accounts := debtAccounts(snap, currency, tab, time.Now())

	resp := struct {
		Error    bool                   `json:"error"`
		Message  string                 `json:"message"`
		Currency string                 `json:"currency"`
		Tab      string                 `json:"tab"`
		Accounts []models.DebtorAccount `json:"accounts"`
	}{
		Error:    false,
		Message:  "Success",
		Currency: currency,
		Tab:      tab,
		Accounts: accounts,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// debtAccounts builds the debts report rows for one currency. The critical
// tab narrows the customer debts down to critical accounts; supplier debts
// are their own tab and never feed it.
func debtAccounts(snap *models.LedgerSnapshot, currency, tab string, now time.Time) []models.DebtorAccount {
	sales, purchases := finance.FoldOpeningBalances(snap.Sales, snap.Purchases, snap.OpeningBalances)

	var accounts []models.DebtorAccount

	if tab == "customer_debts" || tab == "critical" {
		for _, c := range snap.Customers {
			for _, bal := range finance.CustomerBalances(c.ID, sales, snap.Vouchers, now) {
				if bal.Currency != currency || !bal.Amount.IsPositive() {
					continue
				}
				if tab == "critical" && bal.Status.Level != models.LEVEL_CRITICAL {
					continue
				}
				accounts = append(accounts, models.DebtorAccount{
					PersonID:   c.ID,
					Name:       c.Name,
					Phone:      c.Phone,
					PersonType: models.PERSON_CUSTOMER,
					Currency:   bal.Currency,
					Amount:     bal.Amount,
					Days:       bal.DaysSinceLastOp,
					Status:     bal.Status,
				})
			}
		}
	}
	if tab == "supplier_debts" {
		for _, s := range snap.Suppliers {
			for _, bal := range finance.SupplierBalances(s.ID, purchases, snap.Vouchers, now) {
				if bal.Currency != currency || !bal.Amount.IsPositive() {
					continue
				}
				accounts = append(accounts, models.DebtorAccount{
					PersonID:   s.ID,
					Name:       s.Name,
					Phone:      s.Phone,
					PersonType: models.PERSON_SUPPLIER,
					Currency:   bal.Currency,
					Amount:     bal.Amount,
					Days:       bal.DaysSinceLastOp,
					Status:     bal.Status,
				})
			}
		}
	}

	// largest and stalest debts first
	sort.SliceStable(accounts, func(i, j int) bool {
		if !accounts[i].Amount.Equal(accounts[j].Amount) {
			return accounts[i].Amount.GreaterThan(accounts[j].Amount)
		}
		return accounts[i].Days > accounts[j].Days
	})

	return accounts
}

// GetFinancialSummary returns sales vs expenses per currency over a date range
func (h *ReportHandler) GetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	const dateLayout = "2006-01-02"

	startStr := utils.GetURLParam(r, "start_date")
	endStr := utils.GetURLParam(r, "end_date")
	if startStr == "" {
		startStr = time.Now().AddDate(0, -1, 0).Format(dateLayout)
	}
	if endStr == "" {
		endStr = time.Now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, startStr); err != nil {
		utils.BadRequest(w, errors.New("invalid start_date format, expected YYYY-MM-DD"))
		return
	}
	if _, err := time.Parse(dateLayout, endStr); err != nil {
		utils.BadRequest(w, errors.New("invalid end_date format, expected YYYY-MM-DD"))
		return
	}

	summaries, err := h.DB.FinancialSummary(r.Context(), startStr, endStr)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetFinancialSummary:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error     bool                      `json:"error"`
		Message   string                    `json:"message"`
		StartDate string                    `json:"start_date"`
		EndDate   string                    `json:"end_date"`
		Summary   []models.FinancialSummary `json:"summary"`
	}{
		Error:     false,
		Message:   "Success",
		StartDate: startStr,
		EndDate:   endStr,
		Summary:   summaries,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
