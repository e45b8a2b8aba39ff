package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a statement amount string into signed cents. It
// accepts both thousand-separator conventions: "1,234.56" and "1.234,56"
// both yield 123456. Currency symbols and whitespace are stripped.
func ParseAmount(s string) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', '$', '€', '£':
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(s))

	lastDot := strings.LastIndexByte(clean, '.')
	lastComma := strings.LastIndexByte(clean, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Whichever separator comes last is the decimal point.
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		// A lone comma is a decimal point when at most two digits follow,
		// a thousands separator otherwise.
		if len(clean)-lastComma-1 <= 2 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
