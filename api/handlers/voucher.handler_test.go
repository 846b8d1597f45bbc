package api

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

func testVoucher(voucherType, personType string) models.Voucher {
	return models.Voucher{
		PersonID:   7,
		PersonType: personType,
		Type:       voucherType,
		Amount:     decimal.NewFromInt(500),
		Currency:   models.CURRENCY_YER,
	}
}

func TestValidateVoucher(t *testing.T) {
	tests := []struct {
		name    string
		voucher models.Voucher
		wantErr bool
	}{
		{"receipt from customer", testVoucher(models.VOUCHER_RECEIPT, models.PERSON_CUSTOMER), false},
		{"payment to supplier", testVoucher(models.VOUCHER_PAYMENT, models.PERSON_SUPPLIER), false},
		// refund of an overpaid customer and settlement of a prepaid supplier
		{"payment to customer", testVoucher(models.VOUCHER_PAYMENT, models.PERSON_CUSTOMER), false},
		{"receipt from supplier", testVoucher(models.VOUCHER_RECEIPT, models.PERSON_SUPPLIER), false},
		{"unknown type", testVoucher("تحويل", models.PERSON_CUSTOMER), true},
		{"unknown person type", testVoucher(models.VOUCHER_RECEIPT, "موظف"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVoucher(tt.voucher)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVoucherRejectsBadAmounts(t *testing.T) {
	v := testVoucher(models.VOUCHER_RECEIPT, models.PERSON_CUSTOMER)

	v.Amount = decimal.Zero
	assert.Error(t, validateVoucher(v))

	v.Amount = decimal.NewFromInt(-500)
	assert.Error(t, validateVoucher(v))

	v.Amount = decimal.NewFromInt(500)
	v.Currency = "USD"
	assert.Error(t, validateVoucher(v))

	v.Currency = models.CURRENCY_YER
	v.PersonID = 0
	assert.Error(t, validateVoucher(v))
}
