package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

type ActivityHandler struct {
	DB       *dbrepo.ActivityLogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewActivityHandler(db *dbrepo.ActivityLogRepo, infoLog, errorLog *log.Logger) *ActivityHandler {
	return &ActivityHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// ListLogs returns the most recent activity entries, newest first
func (h *ActivityHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(utils.GetURLParam(r, "limit"), 10, 64)

	logs, err := h.DB.ListLogs(r.Context(), limit)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListLogs:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error   bool                 `json:"error"`
		Message string               `json:"message"`
		Logs    []models.ActivityLog `json:"logs"`
	}{
		Error:   false,
		Message: "Success",
		Logs:    logs,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
