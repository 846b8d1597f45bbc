package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

// ExpenseHandler covers operating expenses and daily stock waste, the two
// sinks that reduce cash without touching any party balance.
type ExpenseHandler struct {
	DB       *dbrepo.ExpenseRepo
	Waste    *dbrepo.WasteRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewExpenseHandler(db *dbrepo.ExpenseRepo, waste *dbrepo.WasteRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		DB:       db,
		Waste:    waste,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddExpense records an operating expense
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := utils.ReadJSON(w, r, &expense); err != nil {
		h.errorLog.Println("ERROR_01_AddExpense:", err)
		utils.BadRequest(w, err)
		return
	}
	if expense.Title == "" {
		utils.BadRequest(w, errors.New("title is required"))
		return
	}
	switch expense.Currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		utils.BadRequest(w, fmt.Errorf("unsupported currency %q", expense.Currency))
		return
	}
	if !expense.Amount.IsPositive() {
		utils.BadRequest(w, errors.New("amount must be greater than zero"))
		return
	}

	if err := h.DB.CreateExpense(r.Context(), &expense); err != nil {
		h.errorLog.Println("ERROR_02_AddExpense:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "expense_created", fmt.Sprintf("expense #%d: %s %s %s", expense.ID, expense.Title, expense.Amount, expense.Currency))

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Expense *models.Expense `json:"expense"`
	}
	resp.Status = "success"
	resp.Message = "Expense recorded successfully"
	resp.Expense = &expense
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// ListExpenses returns a filtered, paginated expense list
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	currency := utils.GetURLParam(r, "currency")
	page, limit := utils.GetPagination(r)

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	expenses, totalCount, err := h.DB.ListExpenses(r.Context(), currency, startDate, endDate, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListExpenses:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool             `json:"error"`
		Message    string           `json:"message"`
		Expenses   []models.Expense `json:"expenses"`
		TotalCount int64            `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Expenses:   expenses,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddWaste records unsold stock written off at end of day
func (h *ExpenseHandler) AddWaste(w http.ResponseWriter, r *http.Request) {
	var waste models.Waste
	if err := utils.ReadJSON(w, r, &waste); err != nil {
		h.errorLog.Println("ERROR_01_AddWaste:", err)
		utils.BadRequest(w, err)
		return
	}
	if waste.Description == "" {
		utils.BadRequest(w, errors.New("description is required"))
		return
	}
	switch waste.Currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		utils.BadRequest(w, fmt.Errorf("unsupported currency %q", waste.Currency))
		return
	}
	if waste.Amount.IsNegative() {
		utils.BadRequest(w, errors.New("amount must not be negative"))
		return
	}

	if err := h.Waste.CreateWaste(r.Context(), &waste); err != nil {
		h.errorLog.Println("ERROR_02_AddWaste:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "waste_created", fmt.Sprintf("waste #%d: %s %s %s", waste.ID, waste.Description, waste.Amount, waste.Currency))

	var resp struct {
		Error   bool          `json:"error"`
		Status  string        `json:"status"`
		Message string        `json:"message"`
		Waste   *models.Waste `json:"waste"`
	}
	resp.Status = "success"
	resp.Message = "Waste recorded successfully"
	resp.Waste = &waste
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// ListWaste returns a paginated waste list
func (h *ExpenseHandler) ListWaste(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.GetPagination(r)

	waste, totalCount, err := h.Waste.ListWaste(r.Context(), page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListWaste:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool           `json:"error"`
		Message    string         `json:"message"`
		Waste      []models.Waste `json:"waste"`
		TotalCount int64          `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Waste:      waste,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ExpenseHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
