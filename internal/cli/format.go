package cli

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Formatter turns exact ledger values into display strings. Rounding to the
// currency's minor unit only happens here.
type Formatter struct {
	currency string
	gain     *color.Color
	loss     *color.Color
}

// NewFormatter formats money in the ISO currency code. With colored false
// profits are never colored; otherwise color follows the terminal.
func NewFormatter(currency string, colored bool) *Formatter {
	gain := color.New(color.FgGreen)
	loss := color.New(color.FgRed)
	if !colored {
		gain.DisableColor()
		loss.DisableColor()
	}
	return &Formatter{currency: currency, gain: gain, loss: loss}
}

// Money renders d with the currency's symbol, grouping and decimal places.
func (f *Formatter) Money(d decimal.Decimal) string {
	cur := money.GetCurrency(f.currency)
	if cur == nil {
		return d.StringFixed(2) + " " + f.currency
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return formatLarge(d, cur)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// formatLarge lays out amounts whose minor units overflow int64 the way the
// currency's own formatter would.
func formatLarge(d decimal.Decimal, cur *money.Currency) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(int32(cur.Fraction)), ".")

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteString(cur.Thousand)
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteString(cur.Decimal)
		sb.WriteString(frac)
	}

	out := strings.Replace(cur.Template, "1", sb.String(), 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// Profit is Money colored green for gains and red for losses.
func (f *Formatter) Profit(d decimal.Decimal) string {
	s := f.Money(d)
	switch {
	case d.IsPositive():
		return f.gain.Sprint(s)
	case d.IsNegative():
		return f.loss.Sprint(s)
	}
	return s
}

func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}
