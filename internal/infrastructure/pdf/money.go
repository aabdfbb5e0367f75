package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a money amount as "$1,234.56" with thousands
// separators and exactly two decimals
func FormatCurrency(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return moneyPrinter.Sprintf("$%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
