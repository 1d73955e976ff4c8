package legacyimport

import (
	"fmt"
	"sort"
	"strings"
)

// PriceUnit states how the legacy source stores prices. The importer never
// guesses; the mapping declares it.
type PriceUnit string

const (
	// PriceUnitMajor means whole currency units (e.g. 49.90).
	PriceUnitMajor PriceUnit = "major"
	// PriceUnitMinor means the price is already in cents.
	PriceUnitMinor PriceUnit = "minor"
)

// SourceMapping is an explicit, versioned description of one legacy schema.
// Every run names its mapping on the command line; there is no column
// sniffing at runtime.
type SourceMapping struct {
	Version string

	Table             string
	TitleColumn       string
	DescriptionColumn string
	PriceColumn       string
	SKUColumn         string
	ImageColumn       string
	CategoryColumn    string

	PriceUnit PriceUnit
	Currency  string

	// CategorySlugs maps legacy category display names (lowercased) to the
	// storefront's category slugs. Unmapped names import without a category.
	CategorySlugs map[string]string
}

var mappings = map[string]SourceMapping{
	"v1": {
		Version:           "v1",
		Table:             "goods",
		TitleColumn:       "name",
		DescriptionColumn: "descr",
		PriceColumn:       "price",
		SKUColumn:         "art",
		ImageColumn:       "img",
		CategoryColumn:    "cat_name",
		PriceUnit:         PriceUnitMajor,
		Currency:          "RUB",
		CategorySlugs: map[string]string{
			"новинки":    "new",
			"футболки":   "shirts",
			"худи":       "hoodies",
			"низ":        "bottoms",
			"женское":    "womens",
			"распродажа": "sale",
		},
	},
}

// MappingFor returns the named mapping version.
func MappingFor(version string) (SourceMapping, error) {
	mapping, ok := mappings[version]
	if !ok {
		return SourceMapping{}, fmt.Errorf("unknown mapping version %q (have: %s)", version, strings.Join(mappingVersions(), ", "))
	}
	return mapping, nil
}

func mappingVersions() []string {
	versions := make([]string, 0, len(mappings))
	for v := range mappings {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// SlugForCategory resolves a legacy category name, returning "" when the
// mapping has no entry.
func (m SourceMapping) SlugForCategory(name string) string {
	return m.CategorySlugs[strings.ToLower(strings.TrimSpace(name))]
}
