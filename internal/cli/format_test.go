package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Money(t *testing.T) {
	usd := NewFormatter("USD", false)

	tests := []struct {
		in   string
		want string
	}{
		{"25", "$25.00"},
		{"1234.5", "$1,234.50"},
		{"2.005", "$2.01"},
		{"0", "$0.00"},
		{"-5", "-$5.00"},
		{"92233720368547758.07", "$92,233,720,368,547,758.07"},
		{"1e20", "$100,000,000,000,000,000,000.00"},
		{"-1e20", "-$100,000,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, usd.Money(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatter_MoneyCurrencies(t *testing.T) {
	assert.Equal(t, "R$25,00", NewFormatter("BRL", false).Money(decimal.NewFromInt(25)))
	assert.Equal(t, "R$92.233.720.368.547.758,08",
		NewFormatter("BRL", false).Money(decimal.RequireFromString("92233720368547758.08")))
	assert.Equal(t, "2.50 ZZZ", NewFormatter("ZZZ", false).Money(decimal.RequireFromString("2.5")))
}

func TestFormatter_ProfitWithoutColor(t *testing.T) {
	f := NewFormatter("USD", false)
	for _, s := range []string{"10", "-10", "0"} {
		d := decimal.RequireFromString(s)
		assert.Equal(t, f.Money(d), f.Profit(d))
	}
}

func TestFormatter_Time(t *testing.T) {
	f := NewFormatter("USD", false)
	assert.Equal(t, "-", f.Time(time.Time{}))

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	assert.Equal(t, "01/03/2024 09:30", f.Time(at))
}
