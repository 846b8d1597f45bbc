package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger)

	// --- Public Routes ---
	mux.Post("/api/v1/signin", app.Handlers.Auth.Signin)

	// --- Health check ---
	mux.Get("/api/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "live",
			"app":     models.APPName,
			"version": models.APPVersion,
		})
	})

	// --- Protected Routes ---
	protected := chi.NewRouter()
	protected.Use(app.AuthUser)

	// -------------------- Customer & Supplier Routes --------------------
	protected.Route("/api/v1", func(r chi.Router) {
		// Example: POST /api/v1/users/new
		r.Post("/users/new", app.Handlers.Auth.AddUser)


		// Example: POST /api/v1/customer/new
		r.Post("/customer/new", app.Handlers.Customer.AddCustomer)
		// Example: GET /api/v1/customer?id=5
		r.Get("/customer", app.Handlers.Customer.GetCustomerByID)
		r.Put("/customer/update/{id}", app.Handlers.Customer.UpdateCustomerInfo)
		r.Delete("/customer/{id}", app.Handlers.Customer.DeleteCustomer)
		// Example: GET /api/v1/customer/5/balances
		r.Get("/customer/{id}/balances", app.Handlers.Customer.GetCustomerBalances)

		// Example: GET /api/v1/customers?page=1&limit=20&search=محمد
		r.Get("/customers", app.Handlers.Customer.GetCustomers)
		r.Get("/customers/names", app.Handlers.Customer.GetCustomersNameAndID)

		r.Post("/supplier/new", app.Handlers.Supplier.AddSupplier)
		r.Get("/supplier", app.Handlers.Supplier.GetSupplierByID)
		r.Put("/supplier/update/{id}", app.Handlers.Supplier.UpdateSupplierInfo)
		r.Delete("/supplier/{id}", app.Handlers.Supplier.DeleteSupplier)
		r.Get("/supplier/{id}/balances", app.Handlers.Supplier.GetSupplierBalances)

		r.Get("/suppliers", app.Handlers.Supplier.GetSuppliers)
		r.Get("/suppliers/names", app.Handlers.Supplier.GetSuppliersNameAndID)
	})

	// -------------------- Sales & Purchases Routes --------------------
	protected.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/new", app.Handlers.Sale.AddSale)
		// Example: GET /api/v1/sales?customer_id=5&currency=YER&status=آجل&page=1
		r.Get("/", app.Handlers.Sale.ListSales)
		r.Get("/{id}", app.Handlers.Sale.GetSaleByID)
		r.Patch("/{id}/return", app.Handlers.Sale.ReturnSale)
	})

	protected.Route("/api/v1/purchases", func(r chi.Router) {
		r.Post("/new", app.Handlers.Purchase.AddPurchase)
		r.Get("/", app.Handlers.Purchase.ListPurchases)
		r.Get("/{id}", app.Handlers.Purchase.GetPurchaseByID)
		r.Patch("/{id}/return", app.Handlers.Purchase.ReturnPurchase)
	})

	// -------------------- Voucher Routes --------------------
	protected.Route("/api/v1/vouchers", func(r chi.Router) {
		r.Post("/new", app.Handlers.Voucher.AddVoucher)
		// Example: GET /api/v1/vouchers?person_id=5&person_type=عميل
		r.Get("/", app.Handlers.Voucher.ListVouchers)
		r.Get("/{id}", app.Handlers.Voucher.GetVoucherByID)
	})

	// -------------------- Expense & Waste Routes --------------------
	protected.Route("/api/v1/expenses", func(r chi.Router) {
		r.Post("/new", app.Handlers.Expense.AddExpense)
		r.Get("/", app.Handlers.Expense.ListExpenses)
	})

	protected.Route("/api/v1/waste", func(r chi.Router) {
		r.Post("/new", app.Handlers.Expense.AddWaste)
		r.Get("/", app.Handlers.Expense.ListWaste)
	})

	// -------------------- Opening Balance Routes --------------------
	protected.Route("/api/v1/opening-balances", func(r chi.Router) {
		r.Post("/new", app.Handlers.OpeningBalance.AddOpeningBalance)
		r.Get("/", app.Handlers.OpeningBalance.ListOpeningBalances)
	})

	// -------------------- Report Routes --------------------
	protected.Route("/api/v1/reports", func(r chi.Router) {
		// Global budget snapshot, one summary per currency
		r.Get("/budget", app.Handlers.Report.GetBudgetSummary)
		// Example: GET /api/v1/reports/debts?currency=YER&tab=customer_debts
		r.Get("/debts", app.Handlers.Report.GetDebtsReport)
		// Example: GET /api/v1/reports/financial?start_date=2026-01-01&end_date=2026-01-31
		r.Get("/financial", app.Handlers.Report.GetFinancialSummary)
	})

	// -------------------- Activity Log Routes --------------------
	protected.Get("/api/v1/activity", app.Handlers.Activity.ListLogs)

	// Mount protected routes
	mux.Mount("/", protected)

	return mux
}
