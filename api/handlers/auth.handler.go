package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

type AuthHandler struct {
	DB       *dbrepo.UserRepo
	JWT      models.JWTConfig
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAuthHandler(db *dbrepo.UserRepo, jwtCfg models.JWTConfig, infoLog, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:       db,
		JWT:      jwtCfg,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func validateNewUser(u models.User, password string) error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if u.Role != "manager" && u.Role != "clerk" {
		return errors.New("role must be manager or clerk")
	}
	return nil
}

// AddUser creates a staff account. Protected; the first account comes from
// the admin bootstrap at startup.
func (h *AuthHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(w, r, &user); err != nil {
		h.errorLog.Println("ERROR_01_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}

	password := user.Password
	if err := validateNewUser(user, password); err != nil {
		utils.BadRequest(w, err)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		h.errorLog.Println("ERROR_02_AddUser:", err)
		utils.ServerError(w, err)
		return
	}
	user.Password = hashed

	if err := h.DB.CreateUser(r.Context(), &user); err != nil {
		h.errorLog.Println("ERROR_03_AddUser:", err)
		if utils.IsUniqueViolation(err, "users_username_unique") {
			utils.BadRequest(w, errors.New("username is already taken"))
			return
		}
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Println("user created:", user.Username)

	user.Password = ""
	resp := struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}{
		Status:  "success",
		Message: "User created successfully",
		User:    &user,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// Signin verifies credentials and issues a bearer token
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := utils.ReadJSON(w, r, &creds); err != nil {
		h.errorLog.Println("ERROR_01_Signin:", err)
		utils.BadRequest(w, err)
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		utils.BadRequest(w, errors.New("username and password are required"))
		return
	}

	user, err := h.DB.GetUserByUsername(r.Context(), creds.Username)
	if err != nil {
		h.errorLog.Println("ERROR_02_Signin:", err)
		utils.ServerError(w, err)
		return
	}
	if user == nil || !utils.CheckPassword(creds.Password, user.Password) {
		utils.Unauthorized(w, "invalid username or password")
		return
	}

	token, err := utils.GenerateJWT(models.JWT{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
	}, h.JWT)
	if err != nil {
		h.errorLog.Println("ERROR_03_Signin:", err)
		utils.ServerError(w, err)
		return
	}

	h.infoLog.Println("signin:", user.Username)

	user.Password = ""
	resp := struct {
		Error   bool         `json:"error"`
		Message string       `json:"message"`
		Token   string       `json:"token"`
		User    *models.User `json:"user"`
	}{
		Error:   false,
		Message: "Signed in successfully",
		Token:   token,
		User:    user,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
