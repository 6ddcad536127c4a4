package analytics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

const rupeesPerLakh = 100000

// A bare number up to maxBareLPA is read as LPA and one from minBareRupees up
// as rupees per annum. Anything in between is ambiguous and rejected.
const (
	maxBareLPA    = 500
	minBareRupees = 10000
)

var amountPattern = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)

// unitWord captures the leading unit token after the amount.
var unitWord = regexp.MustCompile(`^[a-z]+\.?`)

type packageUnit int

const (
	unitBare packageUnit = iota
	unitRupees
	unitLakhs
	unitCrores
)

var currencyPrefixes = map[string]packageUnit{
	"":    unitBare,
	"₹":   unitRupees,
	"rs":  unitRupees,
	"rs.": unitRupees,
	"inr": unitRupees,
}

var unitSuffixes = map[string]packageUnit{
	"lpa":    unitLakhs,
	"l":      unitLakhs,
	"lakh":   unitLakhs,
	"lakhs":  unitLakhs,
	"lac":    unitLakhs,
	"lacs":   unitLakhs,
	"cr":     unitCrores,
	"cr.":    unitCrores,
	"crore":  unitCrores,
	"crores": unitCrores,
	"inr":    unitRupees,
	"rs":     unitRupees,
	"rs.":    unitRupees,
}

// trailers may follow the unit without changing it.
var trailers = []string{"/-", "per annum", "p.a.", "pa"}

// ParsePackage normalizes a compensation string to lakhs per annum.
// Accepted forms: "₹12,00,000", "Rs. 1200000/-", "12 LPA", "12.5 lakhs", "1.2 Cr", "12".
// Foreign currencies, unknown units and bare numbers that could be either
// LPA or rupees are rejected.
func ParsePackage(offer string) (float64, error) {
	text := strings.ToLower(strings.TrimSpace(offer))
	if text == "" {
		return 0, fmt.Errorf("%w: empty", apperrors.ErrInvalidPackage)
	}

	loc := amountPattern.FindStringIndex(text)
	if loc == nil {
		return 0, fmt.Errorf("%w: no amount in %q", apperrors.ErrInvalidPackage, offer)
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(text[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", apperrors.ErrInvalidPackage, offer, err)
	}

	prefix, ok := currencyPrefixes[strings.TrimSpace(text[:loc[0]])]
	if !ok {
		return 0, fmt.Errorf("%w: unknown currency in %q", apperrors.ErrInvalidPackage, offer)
	}
	suffix, err := parseUnit(text[loc[1]:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", apperrors.ErrInvalidPackage, offer, err)
	}

	unit := suffix
	if unit == unitBare {
		unit = prefix
	}
	switch unit {
	case unitCrores:
		amount *= 100
	case unitLakhs:
	case unitRupees:
		amount /= rupeesPerLakh
	default:
		switch {
		case amount >= minBareRupees:
			amount /= rupeesPerLakh
		case amount > maxBareLPA:
			return 0, fmt.Errorf("%w: %q is neither LPA nor rupees per annum", apperrors.ErrInvalidPackage, offer)
		}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidPackage, offer)
	}
	return amount, nil
}

// parseUnit reads what follows the amount. An empty remainder is unitBare.
func parseUnit(rest string) (packageUnit, error) {
	rest = strings.TrimSpace(rest)
	unit := unitBare
	if word := unitWord.FindString(rest); word != "" {
		u, ok := unitSuffixes[word]
		if !ok {
			u, ok = unitSuffixes[strings.TrimSuffix(word, ".")]
		}
		if !ok && !isTrailer(rest) {
			return unitBare, fmt.Errorf("unknown unit %q", word)
		}
		if ok {
			unit = u
			rest = strings.TrimSpace(rest[len(word):])
		}
	}
	for rest != "" {
		t, ok := trailer(rest)
		if !ok {
			return unitBare, fmt.Errorf("unexpected %q after amount", rest)
		}
		rest = strings.TrimSpace(rest[len(t):])
	}
	return unit, nil
}

func trailer(rest string) (string, bool) {
	for _, t := range trailers {
		if strings.HasPrefix(rest, t) {
			return t, true
		}
	}
	return "", false
}

func isTrailer(rest string) bool {
	_, ok := trailer(rest)
	return ok
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
