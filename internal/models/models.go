package models

import (
	"time"
)

const (
	APPName    = "Qat Ledger"
	APPVersion = "1.0"
)

// Supported currencies. All aggregation is performed independently per
// currency; cross-currency arithmetic is forbidden.
const (
	CURRENCY_YER = "YER"
	CURRENCY_SAR = "SAR"
	CURRENCY_OMR = "OMR"
)

// SupportedCurrencies is the fixed order reports are returned in.
var SupportedCurrencies = []string{CURRENCY_YER, CURRENCY_SAR, CURRENCY_OMR}

// Transaction status values as stored by the agency's books.
const (
	TRX_CASH   = "نقدي" // paid on the spot
	TRX_CREDIT = "آجل"  // deferred, contributes to outstanding balance
)

// Voucher directions.
const (
	VOUCHER_RECEIPT = "قبض" // money received from a customer
	VOUCHER_PAYMENT = "دفع"  // money paid to a supplier
)

// Party types as recorded on vouchers and opening balances.
const (
	PERSON_CUSTOMER = "عميل"
	PERSON_SUPPLIER = "مورد"
)

// Opening balance sides.
const (
	BALANCE_DEBIT  = "مدين" // the party owes the agency
	BALANCE_CREDIT = "دائن" // the agency owes the party
)

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the signed-in user info carried in the token
type JWT struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	ExpiresAt int64     `json:"exp"`
	IssuedAt  int64     `json:"iat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
	Refresh   time.Duration
}

type DBConfig struct {
	DSN string
}

type Config struct {
	Port int64
	Env  string
	JWT  JWTConfig
	DB   DBConfig
}

// User is an agency staff account allowed to sign in
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`     // manager, clerk
	Password   string    `json:"password"` // hashed password
	AgencyName string    `json:"agency_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
