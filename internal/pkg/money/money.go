package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders a whole-unit amount with thousands separators and two
// decimals, e.g. Format(3000, "₦") is "₦3,000.00".
func Format(amount int64, symbol string) string {
	return symbol + printer.Sprintf("%.2f", float64(amount))
}
