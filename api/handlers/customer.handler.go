package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/finance"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

type CustomerHandler struct {
	DB       *dbrepo.CustomerRepo
	Reports  *dbrepo.ReportRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewCustomerHandler(db *dbrepo.CustomerRepo, reports *dbrepo.ReportRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *CustomerHandler {
	return &CustomerHandler{
		DB:       db,
		Reports:  reports,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddCustomer registers a new customer
func (h *CustomerHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := utils.ReadJSON(w, r, &customer); err != nil {
		h.errorLog.Println("ERROR_01_AddCustomer:", err)
		utils.BadRequest(w, err)
		return
	}
	if customer.Name == "" {
		utils.BadRequest(w, errors.New("customer name is required"))
		return
	}

	if err := h.DB.CreateCustomer(r.Context(), &customer); err != nil {
		h.errorLog.Println("ERROR_02_AddCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "customer_created", fmt.Sprintf("customer %q (#%d)", customer.Name, customer.ID))

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Customer *models.Customer `json:"customer"`
	}
	resp.Status = "success"
	resp.Message = "Customer created successfully"
	resp.Customer = &customer
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetCustomerByID fetches one customer by the id query param
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(utils.GetURLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid customer id"))
		return
	}

	customer, err := h.DB.GetCustomerByID(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetCustomerByID:", err)
		utils.ServerError(w, err)
		return
	}
	if customer == nil {
		utils.NotFound(w, "Customer not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"status":   "success",
		"customer": customer,
	})
}

// UpdateCustomerInfo updates a customer's name and contact details
func (h *CustomerHandler) UpdateCustomerInfo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid customer id"))
		return
	}

	var customer models.Customer
	if err := utils.ReadJSON(w, r, &customer); err != nil {
		h.errorLog.Println("ERROR_01_UpdateCustomerInfo:", err)
		utils.BadRequest(w, err)
		return
	}
	customer.ID = id

	if err := h.DB.UpdateCustomerInfo(r.Context(), &customer); err != nil {
		h.errorLog.Println("ERROR_02_UpdateCustomerInfo:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "customer_updated", fmt.Sprintf("customer #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Customer updated successfully",
	})
}

// GetCustomers returns a paginated customer list with optional search
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	search := utils.GetURLParam(r, "search")
	page, limit := utils.GetPagination(r)

	customers, totalCount, err := h.DB.ListCustomers(r.Context(), search, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetCustomers:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool              `json:"error"`
		Message    string            `json:"message"`
		Customers  []models.Customer `json:"customers"`
		TotalCount int64             `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Customers:  customers,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetCustomersNameAndID returns the lightweight picker list
func (h *CustomerHandler) GetCustomersNameAndID(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.GetCustomersNameAndID(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetCustomersNameAndID:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"status":    "success",
		"customers": list,
	})
}

// DeleteCustomer removes a customer with no transaction history
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid customer id"))
		return
	}

	err = h.DB.DeleteCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, dbrepo.ErrPartyReferenced) {
			utils.BadRequest(w, err)
			return
		}
		h.errorLog.Println("ERROR_01_DeleteCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "customer_deleted", fmt.Sprintf("customer #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Customer deleted successfully",
	})
}

// GetCustomerBalances runs the balance calculator for one customer over the
// current ledger snapshot: one record per supported currency.
func (h *CustomerHandler) GetCustomerBalances(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid customer id"))
		return
	}

	snap, err := h.Reports.LedgerSnapshot(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetCustomerBalances:", err)
		utils.ServerError(w, err)
		return
	}

	sales, _ := finance.FoldOpeningBalances(snap.Sales, snap.Purchases, snap.OpeningBalances)
	balances := finance.CustomerBalances(id, sales, snap.Vouchers, time.Now())

	resp := struct {
		Error    bool                  `json:"error"`
		Message  string                `json:"message"`
		Balances []models.PartyBalance `json:"balances"`
	}{
		Error:    false,
		Message:  "Success",
		Balances: balances,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// logActivity records an audit line without ever failing the request
func (h *CustomerHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
