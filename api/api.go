package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	handlers "github.com/alshuwaie/qat-ledger-api/api/handlers"
	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type application struct {
	config   models.Config
	infoLog  *log.Logger
	errorLog *log.Logger

	Handlers struct {
		Auth           *handlers.AuthHandler
		Customer       *handlers.CustomerHandler
		Supplier       *handlers.SupplierHandler
		Sale           *handlers.SaleHandler
		Purchase       *handlers.PurchaseHandler
		Voucher        *handlers.VoucherHandler
		Expense        *handlers.ExpenseHandler
		OpeningBalance *handlers.OpeningBalanceHandler
		Report         *handlers.ReportHandler
		Activity       *handlers.ActivityHandler
	}
}

// NewApplication wires every repository and handler onto one pgx pool.
func NewApplication(cfg models.Config, db *pgxpool.Pool, infoLog, errorLog *log.Logger) *application {
	app := &application{
		config:   cfg,
		infoLog:  infoLog,
		errorLog: errorLog,
	}

	repos := newRepositories(db)
	activity := repos.Activity

	app.Handlers.Auth = handlers.NewAuthHandler(repos.Users, cfg.JWT, infoLog, errorLog)
	app.Handlers.Customer = handlers.NewCustomerHandler(repos.Customers, repos.Reports, activity, infoLog, errorLog)
	app.Handlers.Supplier = handlers.NewSupplierHandler(repos.Suppliers, repos.Reports, activity, infoLog, errorLog)
	app.Handlers.Sale = handlers.NewSaleHandler(repos.Sales, activity, infoLog, errorLog)
	app.Handlers.Purchase = handlers.NewPurchaseHandler(repos.Purchases, activity, infoLog, errorLog)
	app.Handlers.Voucher = handlers.NewVoucherHandler(repos.Vouchers, activity, infoLog, errorLog)
	app.Handlers.Expense = handlers.NewExpenseHandler(repos.Expenses, repos.Waste, activity, infoLog, errorLog)
	app.Handlers.OpeningBalance = handlers.NewOpeningBalanceHandler(repos.OpeningBalances, activity, infoLog, errorLog)
	app.Handlers.Report = handlers.NewReportHandler(repos.Reports, infoLog, errorLog)
	app.Handlers.Activity = handlers.NewActivityHandler(activity, infoLog, errorLog)

	return app
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func (app *application) Serve() error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", app.config.Port),
		Handler:        app.routes(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	shutdownErr := make(chan error)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		app.infoLog.Println("shutdown signal received:", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.infoLog.Printf("%s v%s listening on port %d (%s)", models.APPName, models.APPVersion, app.config.Port, app.config.Env)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}
	app.infoLog.Println("server stopped")
	return nil
}
