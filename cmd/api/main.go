package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/alshuwaie/qat-ledger-api/api"
	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

func main() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		errorLog.Fatalln("config:", err)
	}

	if err := dbrepo.RunMigrations(cfg.DB.DSN); err != nil {
		errorLog.Fatalln("migrations:", err)
	}
	infoLog.Println("database schema is up to date")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		errorLog.Fatalln("database pool:", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		errorLog.Fatalln("database ping:", err)
	}
	infoLog.Println("connected to database")

	if err := seedAdminUser(ctx, dbrepo.NewUserRepo(pool), infoLog); err != nil {
		errorLog.Fatalln("admin bootstrap:", err)
	}

	app := api.NewApplication(cfg, pool, infoLog, errorLog)
	if err := app.Serve(); err != nil {
		errorLog.Fatalln("server:", err)
	}
}

// seedAdminUser creates the first manager account from ADMIN_USERNAME and
// ADMIN_PASSWORD when no account with that username exists yet. Without it a
// fresh database has nobody who can sign in.
func seedAdminUser(ctx context.Context, users *dbrepo.UserRepo, infoLog *log.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		infoLog.Println("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:       "Administrator",
		Username:   username,
		Role:       "manager",
		Password:   hashed,
		AgencyName: models.APPName,
	}
	if err := users.CreateUser(ctx, &admin); err != nil {
		return err
	}
	infoLog.Println("admin user created:", username)
	return nil
}

func loadConfig() (models.Config, error) {
	var cfg models.Config

	cfg.Port = 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.ParseInt(portStr, 10, 64)
		if err != nil || port < 1 || port > 65535 {
			return cfg, errors.New("PORT must be a number between 1 and 65535")
		}
		cfg.Port = port
	}

	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	cfg.DB.DSN = os.Getenv("DSN")
	if cfg.DB.DSN == "" {
		return cfg, errors.New("DSN is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}
	cfg.JWT = models.JWTConfig{
		SecretKey: secret,
		Issuer:    models.APPName,
		Audience:  "qat-ledger-client",
		Algorithm: "HS256",
		Expiry:    24 * time.Hour,
		Refresh:   7 * 24 * time.Hour,
	}

	return cfg, nil
}
