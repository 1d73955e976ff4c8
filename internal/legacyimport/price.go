package legacyimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceToCents converts a raw source price into integer cents per the
// mapping's declared unit. Decimal arithmetic avoids float drift on values
// like 49.90.
func PriceToCents(raw string, unit PriceUnit) (int, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", raw, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("negative price %q", raw)
	}

	switch unit {
	case PriceUnitMinor:
		if !value.Equal(value.Truncate(0)) {
			return 0, fmt.Errorf("minor-unit price %q has a fractional part", raw)
		}
		return int(value.IntPart()), nil
	case PriceUnitMajor:
		cents := value.Mul(decimal.NewFromInt(100))
		if !cents.Equal(cents.Truncate(0)) {
			return 0, fmt.Errorf("price %q has sub-cent precision", raw)
		}
		return int(cents.IntPart()), nil
	default:
		return 0, fmt.Errorf("unknown price unit %q", unit)
	}
}
