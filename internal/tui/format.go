package tui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats a row or page count with thousand separators.
// Example: FormatCount(18248) returns "18,248".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
