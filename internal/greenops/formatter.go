package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}

	formatted := strconv.FormatFloat(roundTo(f, precision), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	sign := ""
	if n == 0 && strings.HasPrefix(intPart, "-") {
		sign = "-"
	}
	return sign + FormatNumber(n) + "." + frac
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold (1 million) use comma-separated format.
// Values at or above LargeNumberThreshold use "~X.X million" format.
// Values at or above BillionThreshold use "~X.X billion" format.
//
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// FormatEmission scales a kg CO2 value to the most readable unit:
// mg below 1 g, g below 1 kg, kg below 1 t, and t above.
//
//	FormatEmission(0)       // "0 g"
//	FormatEmission(0.0004)  // "400 mg"
//	FormatEmission(0.25)    // "250 g"
//	FormatEmission(7.4)     // "7.40 kg"
//	FormatEmission(2500)    // "2.50 t"
func FormatEmission(kg float64) string {
	switch {
	case kg == 0:
		return "0 g"
	case kg < GramsToKg:
		return fmt.Sprintf("%.0f mg", kg/MilligramsToKg)
	case kg < KgToKg:
		return fmt.Sprintf("%.0f g", kg/GramsToKg)
	case kg < TonsToKg:
		return FormatFloat(kg, displayPrecision) + " kg"
	default:
		return FormatFloat(kg/TonsToKg, displayPrecision) + " t"
	}
}

// FormatDistance renders kilometers, switching to meters below 1 km.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return FormatFloat(km, displayPrecision) + " km"
}
