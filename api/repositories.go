package api

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/dbrepo"
)

type repositories struct {
	Users           *dbrepo.UserRepo
	Customers       *dbrepo.CustomerRepo
	Suppliers       *dbrepo.SupplierRepo
	Sales           *dbrepo.SaleRepo
	Purchases       *dbrepo.PurchaseRepo
	Vouchers        *dbrepo.VoucherRepo
	Expenses        *dbrepo.ExpenseRepo
	Waste           *dbrepo.WasteRepo
	OpeningBalances *dbrepo.OpeningBalanceRepo
	Activity        *dbrepo.ActivityLogRepo
	Reports         *dbrepo.ReportRepo
}

func newRepositories(db *pgxpool.Pool) *repositories {
	return &repositories{
		Users:           dbrepo.NewUserRepo(db),
		Customers:       dbrepo.NewCustomerRepo(db),
		Suppliers:       dbrepo.NewSupplierRepo(db),
		Sales:           dbrepo.NewSaleRepo(db),
		Purchases:       dbrepo.NewPurchaseRepo(db),
		Vouchers:        dbrepo.NewVoucherRepo(db),
		Expenses:        dbrepo.NewExpenseRepo(db),
		Waste:           dbrepo.NewWasteRepo(db),
		OpeningBalances: dbrepo.NewOpeningBalanceRepo(db),
		Activity:        dbrepo.NewActivityLogRepo(db),
		Reports:         dbrepo.NewReportRepo(db),
	}
}
