package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

type PurchaseHandler struct {
	DB       *dbrepo.PurchaseRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewPurchaseHandler(db *dbrepo.PurchaseRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		DB:       db,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddPurchase records a new purchase from a supplier
func (h *PurchaseHandler) AddPurchase(w http.ResponseWriter, r *http.Request) {
	var purchase models.Purchase
	if err := utils.ReadJSON(w, r, &purchase); err != nil {
		h.errorLog.Println("ERROR_01_AddPurchase:", err)
		utils.BadRequest(w, err)
		return
	}
	if purchase.SupplierID == 0 {
		utils.BadRequest(w, errors.New("supplier_id is required"))
		return
	}
	if err := validateTrade(purchase.Currency, purchase.Status, purchase.Total.IsPositive()); err != nil {
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.CreatePurchase(r.Context(), &purchase); err != nil {
		h.errorLog.Println("ERROR_02_AddPurchase:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "purchase_created", fmt.Sprintf("purchase #%d: %s %s (%s)", purchase.ID, purchase.Total, purchase.Currency, purchase.Status))

	var resp struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Purchase *models.Purchase `json:"purchase"`
	}
	resp.Status = "success"
	resp.Message = "Purchase recorded successfully"
	resp.Purchase = &purchase
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetPurchaseByID fetches one purchase
func (h *PurchaseHandler) GetPurchaseByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid purchase id"))
		return
	}

	purchase, err := h.DB.GetPurchaseByID(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetPurchaseByID:", err)
		utils.ServerError(w, err)
		return
	}
	if purchase == nil {
		utils.NotFound(w, "Purchase not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"status":   "success",
		"purchase": purchase,
	})
}

// ListPurchases returns a filtered, paginated purchase list
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	supplierID, _ := strconv.ParseInt(utils.GetURLParam(r, "supplier_id"), 10, 64)
	currency := utils.GetURLParam(r, "currency")
	status := utils.GetURLParam(r, "status")
	page, limit := utils.GetPagination(r)

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	purchases, totalCount, err := h.DB.ListPurchases(r.Context(), supplierID, currency, status, startDate, endDate, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListPurchases:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool              `json:"error"`
		Message    string            `json:"message"`
		Purchases  []models.Purchase `json:"purchases"`
		TotalCount int64             `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Purchases:  purchases,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// ReturnPurchase soft-voids a purchase; the record stays on file for auditing
func (h *PurchaseHandler) ReturnPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid purchase id"))
		return
	}

	if err := h.DB.ReturnPurchase(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_ReturnPurchase:", err)
		utils.BadRequest(w, errors.New("purchase not found or already returned"))
		return
	}

	h.logActivity(r, "purchase_returned", fmt.Sprintf("purchase #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Purchase returned successfully",
	})
}

func (h *PurchaseHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
