package enums

import "fmt"

// ProductSort names the supported catalog sort keys.
type ProductSort string

const (
	ProductSortRecent    ProductSort = "recent"
	ProductSortAlpha     ProductSort = "alpha"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
)

var validProductSorts = []ProductSort{
	ProductSortRecent,
	ProductSortAlpha,
	ProductSortPriceAsc,
	ProductSortPriceDesc,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. Empty input falls
// back to insertion recency, matching the storefront default.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortRecent, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
