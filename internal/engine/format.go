package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var goldPrinter = message.NewPrinter(language.English)

// FormatGold renders n with thousands separators, keeping the sign.
func FormatGold(n int) string {
	return goldPrinter.Sprintf("%d", n)
}
