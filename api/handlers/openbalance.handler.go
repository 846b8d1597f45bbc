package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

// OpeningBalanceHandler manages balances carried over from before the
// agency started keeping its books here.
type OpeningBalanceHandler struct {
	DB       *dbrepo.OpeningBalanceRepo
	Activity *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewOpeningBalanceHandler(db *dbrepo.OpeningBalanceRepo, activity *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{
		DB:       db,
		Activity: activity,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddOpeningBalance records a carried-over balance for a party
func (h *OpeningBalanceHandler) AddOpeningBalance(w http.ResponseWriter, r *http.Request) {
	var ob models.OpeningBalance
	if err := utils.ReadJSON(w, r, &ob); err != nil {
		h.errorLog.Println("ERROR_01_AddOpeningBalance:", err)
		utils.BadRequest(w, err)
		return
	}
	if ob.PersonID == 0 {
		utils.BadRequest(w, errors.New("person_id is required"))
		return
	}
	if ob.PersonType != models.PERSON_CUSTOMER && ob.PersonType != models.PERSON_SUPPLIER {
		utils.BadRequest(w, errors.New("invalid person type"))
		return
	}
	if ob.BalanceType != models.BALANCE_DEBIT && ob.BalanceType != models.BALANCE_CREDIT {
		utils.BadRequest(w, errors.New("invalid balance type"))
		return
	}
	switch ob.Currency {
	case models.CURRENCY_YER, models.CURRENCY_SAR, models.CURRENCY_OMR:
	default:
		utils.BadRequest(w, fmt.Errorf("unsupported currency %q", ob.Currency))
		return
	}
	if !ob.Amount.IsPositive() {
		utils.BadRequest(w, errors.New("amount must be greater than zero"))
		return
	}

	if err := h.DB.CreateOpeningBalance(r.Context(), &ob); err != nil {
		h.errorLog.Println("ERROR_02_AddOpeningBalance:", err)
		utils.BadRequest(w, err)
		return
	}

	h.logActivity(r, "opening_balance_created", fmt.Sprintf("opening balance #%d: %s %s %s", ob.ID, ob.BalanceType, ob.Amount, ob.Currency))

	var resp struct {
		Error          bool                   `json:"error"`
		Status         string                 `json:"status"`
		Message        string                 `json:"message"`
		OpeningBalance *models.OpeningBalance `json:"opening_balance"`
	}
	resp.Status = "success"
	resp.Message = "Opening balance recorded successfully"
	resp.OpeningBalance = &ob
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// ListOpeningBalances returns opening balances, optionally for one party
func (h *OpeningBalanceHandler) ListOpeningBalances(w http.ResponseWriter, r *http.Request) {
	personID, _ := strconv.ParseInt(utils.GetURLParam(r, "person_id"), 10, 64)
	personType := utils.GetURLParam(r, "person_type")

	balances, err := h.DB.ListOpeningBalances(r.Context(), personID, personType)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListOpeningBalances:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error           bool                    `json:"error"`
		Message         string                  `json:"message"`
		OpeningBalances []models.OpeningBalance `json:"opening_balances"`
	}{
		Error:           false,
		Message:         "Success",
		OpeningBalances: balances,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *OpeningBalanceHandler) logActivity(r *http.Request, action, details string) {
	var userID int64
	if user := utils.UserFromRequest(r); user != nil {
		userID = user.ID
	}
	if err := h.Activity.SaveLog(r.Context(), userID, action, details, "success"); err != nil {
		h.errorLog.Println("activity log:", err)
	}
}
