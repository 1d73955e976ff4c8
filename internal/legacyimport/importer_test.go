package legacyimport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	rows []SourceProduct
}

func (s *stubSource) ReadAll(_ context.Context) ([]SourceProduct, error) {
	return s.rows, nil
}

type stubAPI struct {
	categories []CategoryRef
	products   []ProductRef
	created    []CreateProductRequest
	createErr  error
}

func (s *stubAPI) ListCategories(_ context.Context) ([]CategoryRef, error) {
	return s.categories, nil
}

func (s *stubAPI) ListProducts(_ context.Context) ([]ProductRef, error) {
	return s.products, nil
}

func (s *stubAPI) CreateProduct(_ context.Context, req CreateProductRequest) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, req)
	return nil
}

func v1Mapping(t *testing.T) SourceMapping {
	t.Helper()
	mapping, err := MappingFor("v1")
	require.NoError(t, err)
	return mapping
}

func newTestImporter(t *testing.T, source *stubSource, api *stubAPI, dryRun bool) *Importer {
	t.Helper()
	importer, err := NewImporter(ImporterParams{
		Mapping: v1Mapping(t),
		Source:  source,
		API:     api,
		DryRun:  dryRun,
	})
	require.NoError(t, err)
	return importer
}

func TestImporterCreatesAndMapsCategories(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "Худи Classic", RawPrice: "49.90", SKU: "H-001", ImageURL: "https://legacy.test/h1.jpg", CategoryName: "Худи"},
	}}
	api := &stubAPI{
		categories: []CategoryRef{{ID: "cat-hoodies", Slug: "hoodies"}},
	}

	summary, err := newTestImporter(t, source, api, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, api.created, 1)
	created := api.created[0]
	assert.Equal(t, "Худи Classic", created.Title)
	assert.Equal(t, 4990, created.PriceCents)
	assert.Equal(t, "RUB", created.Currency)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, "cat-hoodies", *created.CategoryID)
	require.NotNil(t, created.SKU)
	assert.Equal(t, "H-001", *created.SKU)
	assert.Equal(t, []string{"https://legacy.test/h1.jpg"}, created.Images)
}

func TestImporterSkipsExistingTitles(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "Existing Tee", RawPrice: "10.00"},
		{Title: "New Tee", RawPrice: "20.00"},
	}}
	api := &stubAPI{
		products: []ProductRef{{ID: "p1", Title: "existing tee"}},
	}

	summary, err := newTestImporter(t, source, api, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, api.created, 1)
	assert.Equal(t, "New Tee", api.created[0].Title)
}

func TestImporterSkipsDuplicatesWithinRun(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "Twin Tee", RawPrice: "10.00"},
		{Title: "twin tee", RawPrice: "10.00"},
	}}
	api := &stubAPI{}

	summary, err := newTestImporter(t, source, api, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
}

func TestImporterAggregatesRowFailures(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "Bad Price", RawPrice: "free"},
		{Title: "Good Tee", RawPrice: "15.00"},
	}}
	api := &stubAPI{}

	summary, err := newTestImporter(t, source, api, false).Run(context.Background())
	// Row failures do not abort the run; they come back aggregated.
	require.Error(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, api.created, 1)
	assert.Equal(t, "Good Tee", api.created[0].Title)
}

func TestImporterDryRun(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "Dry Tee", RawPrice: "10.00"},
	}}
	api := &stubAPI{}

	summary, err := newTestImporter(t, source, api, true).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Empty(t, api.created)
}

func TestImporterSkipsUntitledRows(t *testing.T) {
	source := &stubSource{rows: []SourceProduct{
		{Title: "   ", RawPrice: "10.00"},
	}}
	api := &stubAPI{}

	summary, err := newTestImporter(t, source, api, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
}
