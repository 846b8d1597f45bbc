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

type VoucherHandler struct {
	DB       *dbrepo.VoucherRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewVoucherHandler(db *dbrepo.VoucherRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *VoucherHandler {
	return &VoucherHandler{
		DB:       db,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// validateVoucher checks type, person type, currency and amount. Type and
// person type vary independently: a payment to a customer refunds an overpaid
// position, a receipt from a supplier settles a prepaid one.
func validateVoucher(v models.Voucher) error {
	if v.PersonID == 0 {
		return errors.New("person_id is required")
	}
	if v.Type != models.VOUCHER_RECEIPT && v.Type != models.VOUCHER_PAYMENT {
		return fmt.Errorf("type must be %q or %q", models.VOUCHER_RECEIPT, models.VOUCHER_PAYMENT)
	}
	if v.PersonType != models.PERSON_CUSTOMER && v.PersonType != models.PERSON_SUPPLIER {
		return errors.New("invalid person type")
	}
	switch v.Currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		return fmt.Errorf("unsupported currency %q", v.Currency)
	}
	if !v.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// AddVoucher records a money movement against a party: receipts and payments
// in either direction, including refunds of overpaid positions.
func (h *VoucherHandler) AddVoucher(w http.ResponseWriter, r *http.Request) {
	var voucher models.Voucher
	if err := utils.ReadJSON(w, r, &voucher); err != nil {
		h.errorLog.Println("ERROR_01_AddVoucher:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := validateVoucher(voucher); err != nil {
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.CreateVoucher(r.Context(), &voucher); err != nil {
		h.errorLog.Println("ERROR_02_AddVoucher:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "voucher_created", fmt.Sprintf("voucher #%d: %s %s %s", voucher.ID, voucher.Type, voucher.Amount, voucher.Currency))

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Voucher *models.Voucher `json:"voucher"`
	}
	resp.Status = "success"
	resp.Message = "Voucher recorded successfully"
	resp.Voucher = &voucher
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetVoucherByID fetches one voucher
func (h *VoucherHandler) GetVoucherByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(w, errors.New("invalid voucher id"))
		return
	}

	voucher, err := h.DB.GetVoucherByID(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetVoucherByID:", err)
		utils.ServerError(w, err)
		return
	}
	if voucher == nil {
		utils.NotFound(w, "Voucher not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"status":  "success",
		"voucher": voucher,
	})
}

// ListVouchers returns a filtered, paginated voucher list
func (h *VoucherHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	personID, _ := strconv.ParseInt(utils.GetURLParam(r, "person_id"), 10, 64)
	personType := utils.GetURLParam(r, "person_type")
	voucherType := utils.GetURLParam(r, "type")
	currency := utils.GetURLParam(r, "currency")
	page, limit := utils.GetPagination(r)

	vouchers, totalCount, err := h.DB.ListVouchers(r.Context(), personID, personType, voucherType, currency, page, limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListVouchers:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error      bool             `json:"error"`
		Message    string           `json:"message"`
		Vouchers   []models.Voucher `json:"vouchers"`
		TotalCount int64            `json:"total_count"`
	}{
		Error:      false,
		Message:    "Success",
		Vouchers:   vouchers,
		TotalCount: totalCount,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *VoucherHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
