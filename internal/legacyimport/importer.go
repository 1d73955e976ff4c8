package legacyimport

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/streetside/storefront-backend/pkg/logger"
)

// catalogAPI is the admin surface the importer needs.
type catalogAPI interface {
	ListCategories(ctx context.Context) ([]CategoryRef, error)
	ListProducts(ctx context.Context) ([]ProductRef, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) error
}

// sourceCatalog is the legacy read surface.
type sourceCatalog interface {
	ReadAll(ctx context.Context) ([]SourceProduct, error)
}

// Summary reports what one run did.
type Summary struct {
	Created int
	Skipped int
	Failed  int
}

// Importer copies a legacy catalog into the storefront through the admin API.
type Importer struct {
	mapping SourceMapping
	source  sourceCatalog
	api     catalogAPI
	logg    *logger.Logger
	dryRun  bool
}

// ImporterParams bundles the importer's dependencies.
type ImporterParams struct {
	Mapping SourceMapping
	Source  sourceCatalog
	API     catalogAPI
	Logger  *logger.Logger
	DryRun  bool
}

// NewImporter constructs an importer.
func NewImporter(params ImporterParams) (*Importer, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("source reader is required")
	}
	if params.API == nil {
		return nil, fmt.Errorf("admin api client is required")
	}
	return &Importer{
		mapping: params.Mapping,
		source:  params.Source,
		api:     params.API,
		logg:    params.Logger,
		dryRun:  params.DryRun,
	}, nil
}

// Run executes the import. Row-level failures are collected rather than
// aborting the run; the combined error is returned alongside the summary.
func (imp *Importer) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	rows, err := imp.source.ReadAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("reading source catalog: %w", err)
	}

	categories, err := imp.api.ListCategories(ctx)
	if err != nil {
		return summary, err
	}
	categoryIDsBySlug := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryIDsBySlug[category.Slug] = category.ID
	}

	existing, err := imp.api.ListProducts(ctx)
	if err != nil {
		return summary, err
	}
	existingTitles := make(map[string]struct{}, len(existing))
	for _, product := range existing {
		existingTitles[normalizeTitle(product.Title)] = struct{}{}
	}

	var failures error
	for _, row := range rows {
		title := strings.TrimSpace(row.Title)
		if title == "" {
			summary.Skipped++
			continue
		}
		if _, ok := existingTitles[normalizeTitle(title)]; ok {
			summary.Skipped++
			imp.info(ctx, "import.skip.existing", title)
			continue
		}

		req, err := imp.buildRequest(row, categoryIDsBySlug)
		if err != nil {
			summary.Failed++
			failures = multierr.Append(failures, fmt.Errorf("row %q: %w", title, err))
			continue
		}

		if imp.dryRun {
			summary.Created++
			imp.info(ctx, "import.dry_run.create", title)
			continue
		}

		if err := imp.api.CreateProduct(ctx, req); err != nil {
			summary.Failed++
			failures = multierr.Append(failures, err)
			continue
		}

		existingTitles[normalizeTitle(title)] = struct{}{}
		summary.Created++
		imp.info(ctx, "import.created", title)
	}

	return summary, failures
}

func (imp *Importer) buildRequest(row SourceProduct, categoryIDsBySlug map[string]string) (CreateProductRequest, error) {
	cents, err := PriceToCents(row.RawPrice, imp.mapping.PriceUnit)
	if err != nil {
		return CreateProductRequest{}, err
	}

	req := CreateProductRequest{
		Title:       strings.TrimSpace(row.Title),
		Description: strings.TrimSpace(row.Description),
		PriceCents:  cents,
		Currency:    imp.mapping.Currency,
	}
	if sku := strings.TrimSpace(row.SKU); sku != "" {
		req.SKU = &sku
	}
	if image := strings.TrimSpace(row.ImageURL); image != "" {
		req.Images = []string{image}
	}
	if slug := imp.mapping.SlugForCategory(row.CategoryName); slug != "" {
		if id, ok := categoryIDsBySlug[slug]; ok {
			req.CategoryID = &id
		}
	}
	return req, nil
}

func (imp *Importer) info(ctx context.Context, msg, title string) {
	if imp.logg == nil {
		return
	}
	imp.logg.Info(imp.logg.WithField(ctx, "title", title), msg)
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
