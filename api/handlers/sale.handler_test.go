package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

func TestValidateTrade(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		status   string
		positive bool
		wantErr  bool
	}{
		{"cash sale in rial", models.CURRENCY_YER, models.TRX_CASH, true, false},
		{"credit sale in saudi rial", models.CURRENCY_SAR, models.TRX_CREDIT, true, false},
		{"credit sale in omani rial", models.CURRENCY_OMR, models.TRX_CREDIT, true, false},
		{"unknown currency", "USD", models.TRX_CASH, true, true},
		{"empty currency", "", models.TRX_CASH, true, true},
		{"unknown status", models.CURRENCY_YER, "paid", true, true},
		{"zero total", models.CURRENCY_YER, models.TRX_CASH, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTrade(tt.currency, tt.status, tt.positive)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	t.Run("both dates present", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sales?start_date=2026-01-01&end_date=2026-01-31", nil)
		start, end, err := parseDateRange(r)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("missing dates are zero values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sales", nil)
		start, end, err := parseDateRange(r)
		require.NoError(t, err)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})

	t.Run("half a range counts as no range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sales?start_date=2026-01-01", nil)
		start, end, err := parseDateRange(r)
		require.NoError(t, err)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sales?start_date=01-01-2026&end_date=2026-01-31", nil)
		_, _, err := parseDateRange(r)
		assert.Error(t, err)
	})
}

func TestValidateTradeAcceptsPositiveDecimal(t *testing.T) {
	total := decimal.NewFromFloat(1500.50)
	assert.NoError(t, validateTrade(models.CURRENCY_YER, models.TRX_CREDIT, total.IsPositive()))
}
