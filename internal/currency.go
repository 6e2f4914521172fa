package internal

import (
	"os"
	"slices"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// BaseCurrency is the unit the rate table is expressed in
const BaseCurrency = "USD"

// exchangeRates holds units of each currency per one BaseCurrency.
// The table is fixed at build time; there is no live rate feed.
var exchangeRates = map[string]float64{
	"USD": 1,
	"EUR": 0.85,
	"GBP": 0.73,
	"JPY": 110,
	"CAD": 1.25,
	"AUD": 1.35,
}

// SupportedCurrencies lists the currency codes a subscription may use, in display order
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD"}

// IsSupportedCurrency reports whether code is in the rate table
func IsSupportedCurrency(code string) bool {
	_, ok := exchangeRates[code]
	return ok
}

// Convert converts amount between two supported currencies through the base unit.
// Converting a currency to itself returns amount unchanged.
func Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	fromRate, ok := exchangeRates[from]
	if !ok {
		fromRate = 1
	}
	toRate, ok := exchangeRates[to]
	if !ok {
		toRate = 1
	}
	return amount / fromRate * toRate
}

// displaySymbols are the short symbols shown next to goal and category amounts
var displaySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
}

// Symbol returns the display symbol for a code, or the code itself
func Symbol(code string) string {
	if sym, ok := displaySymbols[code]; ok {
		return sym
	}
	return code
}

// Currency carries the formatting rules for one currency code
type Currency struct {
	Code    string
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
	symbol  string
}

// defaultLocaleForCurrency is the "home" locale used when no system locale was detected
var defaultLocaleForCurrency = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"JPY": language.Japanese,
	"CAD": language.MustParse("en-CA"),
	"AUD": language.MustParse("en-AU"),
}

// detectedLocale is set by DetectSystemCurrency and wins over defaultLocaleForCurrency
var detectedLocale language.Tag

// skipSystemLocale disables the platform lookup so tests only see env vars
var skipSystemLocale = false

// GetCurrency returns formatting rules for code
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	tag := language.English
	if detectedLocale != language.Und {
		tag = detectedLocale
	} else if t, ok := defaultLocaleForCurrency[code]; ok {
		tag = t
	}
	return getCurrencyWithLocale(code, tag)
}

// getCurrencyWithLocale returns formatting rules for code using a fixed locale
func getCurrencyWithLocale(code string, tag language.Tag) Currency {
	return newCurrency(strings.ToUpper(code), tag)
}

func newCurrency(code string, tag language.Tag) Currency {
	c := Currency{
		Code:    code,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		// unknown codes format as plain numbers followed by the code
		c.unit = currency.USD
		c.symbol = code
		return c
	}
	c.unit = unit
	if sym, ok := displaySymbols[code]; ok {
		c.symbol = sym
	} else {
		c.symbol = c.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return c
}

// isPrefix reports whether the symbol goes before the amount.
// x/text does not expose CLDR symbol placement, so the list is kept by hand.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD":
		return true
	default:
		return false
	}
}

func (c Currency) fractionDigits() int {
	if c.Code == "JPY" {
		return 0
	}
	return 2
}

// Format formats amount with the currency symbol
func (c Currency) Format(amount float64) string {
	digits := c.fractionDigits()
	formatted := c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
	if c.isPrefix() {
		return c.symbol + formatted
	}
	return formatted + " " + c.symbol
}

// FormatConverted converts amount from its own currency into c and formats it
func (c Currency) FormatConverted(amount float64, from string) string {
	return c.Format(Convert(amount, from, c.Code))
}

// DetectSystemCurrency derives a currency code from the OS locale and remembers the
// locale for formatting. It returns "" when nothing could be detected.
func DetectSystemCurrency() string {
	locale := detectSystemLocale()
	if locale == "" {
		return ""
	}
	code, tag := parseCurrencyFromLocale(locale)
	if code == "" {
		return ""
	}
	detectedLocale = tag
	return code
}

// DefaultDisplayCurrency is the detected system currency when it is supported,
// otherwise BaseCurrency
func DefaultDisplayCurrency() string {
	if code := DetectSystemCurrency(); slices.Contains(SupportedCurrencies, code) {
		return code
	}
	return BaseCurrency
}

// detectSystemLocale checks the locale env vars, most specific first, and falls back
// to the platform lookup
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	if skipSystemLocale {
		return ""
	}
	return platformLocale()
}

// parseCurrencyFromLocale maps a locale string such as "sv_SE.UTF-8" to the
// currency of its region and the matching language tag
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}
