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

type SupplierHandler struct {
	DB       *dbrepo.SupplierRepo
	Reports  *dbrepo.ReportRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewSupplierHandler(db *dbrepo.SupplierRepo, reports *dbrepo.ReportRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *SupplierHandler {
	return &SupplierHandler{
		DB:       db,
		Reports:  reports,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddSupplier registers a new supplier
func (h *SupplierHandler) AddSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier models.Supplier
	if err := utils.ReadJSON(w, r, &supplier); err != nil {
		h.errorLog.Println("ERROR_01_AddSupplier:", err)
		utils.BadRequest(w, err)
		return
	}
	if supplier.Name == "" {
		utils.BadRequest(w, errors.New("supplier name is required"))
		return
	}

	if err := h.DB.CreateSupplier(r.Context(), &supplier); err != nil {
		h.errorLog.Println("ERROR_02_AddSupplier:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "supplier_created", fmt.Sprintf("supplier %q (#%d)", supplier.Name, supplier.ID))

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Supplier *models.Supplier `json:"supplier"`
	}
	resp.Status = "success"
	resp.Message = "Supplier created successfully"
	resp.Supplier = &supplier
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetSupplierByID fetches one supplier by the id query param
func (h *SupplierHandler) GetSupplierByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(utils.GetURLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid supplier id"))
		return
	}

	supplier, err := h.DB.GetSupplierByID(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSupplierByID:", err)
		utils.ServerError(w, err)
		return
	}
	if supplier == nil {
		utils.NotFound(w, "Supplier not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"status":   "success",
		"supplier": supplier,
	})
}

// UpdateSupplierInfo updates a supplier's name and contact details
func (h *SupplierHandler) UpdateSupplierInfo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid supplier id"))
		return
	}

	var supplier models.Supplier
	if err := utils.ReadJSON(w, r, &supplier); err != nil {
		h.errorLog.Println("ERROR_01_UpdateSupplierInfo:", err)
		utils.BadRequest(w, err)
		return
	}
	supplier.ID = id

	if err := h.DB.UpdateSupplierInfo(r.Context(), &supplier); err != nil {
		h.errorLog.Println("ERROR_02_UpdateSupplierInfo:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "supplier_updated", fmt.Sprintf("supplier #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Supplier updated successfully",
	})
}

// GetSuppliers returns a paginated supplier list with optional search
func (h *SupplierHandler) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	search := utils.GetURLParam(r, "search")
	page, limit := utils.GetPagination(r)

	suppliers, totalCount, err := h.DB.ListSuppliers(r.Context(), search, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSuppliers:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool              `json:"error"`
		Message    string            `json:"message"`
		Suppliers  []models.Supplier `json:"suppliers"`
		TotalCount int64             `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Suppliers:  suppliers,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetSuppliersNameAndID returns the lightweight picker list
func (h *SupplierHandler) GetSuppliersNameAndID(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.GetSuppliersNameAndID(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSuppliersNameAndID:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"status":    "success",
		"suppliers": list,
	})
}

// DeleteSupplier removes a supplier with no transaction history
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid supplier id"))
		return
	}

	if err := h.DB.DeleteSupplier(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteSupplier:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "supplier_deleted", fmt.Sprintf("supplier #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Supplier deleted successfully",
	})
}

// GetSupplierBalances runs the balance calculator for one supplier over the
// current ledger snapshot: one record per supported currency.
func (h *SupplierHandler) GetSupplierBalances(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid supplier id"))
		return
	}

	snap, err := h.Reports.LedgerSnapshot(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSupplierBalances:", err)
		utils.ServerError(w, err)
		return
	}

	_, purchases := finance.FoldOpeningBalances(snap.Sales, snap.Purchases, snap.OpeningBalances)
	balances := finance.SupplierBalances(id, purchases, snap.Vouchers, time.Now())

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

func (h *SupplierHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
