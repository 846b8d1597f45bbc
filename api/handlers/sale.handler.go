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
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

type SaleHandler struct {
	DB       *dbrepo.SaleRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewSaleHandler(db *dbrepo.SaleRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *SaleHandler {
	return &SaleHandler{
		DB:       db,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func validateTrade(currency, status string, totalPositive bool) error {
	switch currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		return fmt.Errorf("unsupported currency %q", currency)
	}
	if status != models.TRX_CASH && status != models.TRX_CREDIT {
		return fmt.Errorf("status must be %q or %q", models.TRX_CASH, models.TRX_CREDIT)
	}
	if !totalPositive {
		return errors.New("total must be greater than zero")
	}
	return nil
}

// AddSale records a new sale
func (h *SaleHandler) AddSale(w http.ResponseWriter, r *http.Request) {
	var sale models.Sale
	if err := utils.ReadJSON(w, r, &sale); err != nil {
		h.errorLog.Println("ERROR_01_AddSale:", err)
		utils.BadRequest(w, err)
		return
	}
	if sale.CustomerID == 0 {
		utils.BadRequest(w, errors.New("customer_id is required"))
		return
	}
	if err := validateTrade(sale.Currency, sale.Status, sale.Total.IsPositive()); err != nil {
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.CreateSale(r.Context(), &sale); err != nil {
		h.errorLog.Println("ERROR_02_AddSale:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "sale_created", fmt.Sprintf("sale #%d: %s %s (%s)", sale.ID, sale.Total, sale.Currency, sale.Status))

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		Sale    *models.Sale `json:"sale"`
	}
	resp.Status = "success"
	resp.Message = "Sale recorded successfully"
	resp.Sale = &sale
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetSaleByID fetches one sale
func (h *SaleHandler) GetSaleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid sale id"))
		return
	}

	sale, err := h.DB.GetSaleByID(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSaleByID:", err)
		utils.ServerError(w, err)
		return
	}
	if sale == nil {
		utils.NotFound(w, "Sale not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"sale":   sale,
	})
}

// ListSales returns a filtered, paginated sales list
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.ParseInt(utils.GetURLParam(r, "customer_id"), 10, 64)
	currency := utils.GetURLParam(r, "currency")
	status := utils.GetURLParam(r, "status")
	page, limit := utils.GetPagination(r)

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	sales, totalCount, err := h.DB.ListSales(r.Context(), customerID, currency, status, startDate, endDate, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListSales:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool          `json:"error"`
		Message    string        `json:"message"`
		Sales      []models.Sale `json:"sales"`
		TotalCount int64         `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Sales:      sales,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// ReturnSale soft-voids a sale; the record stays on file for auditing
func (h *SaleHandler) ReturnSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid sale id"))
		return
	}

	if err := h.DB.ReturnSale(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_ReturnSale:", err)
		utils.BadRequest(w, errors.New("sale not found or already returned"))
		return
	}

	h.logActivity(r, "sale_returned", fmt.Sprintf("sale #%d", id))

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Sale returned successfully",
	})
}

// parseDateRange reads optional start_date/end_date params, YYYY-MM-DD
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	const dateLayout = "2006-01-02"
	startStr := utils.GetURLParam(r, "start_date")
	endStr := utils.GetURLParam(r, "end_date")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, nil
	}
	startDate, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format, expected YYYY-MM-DD")
	}
	return startDate, endDate, nil
}

func (h *SaleHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
