package legacyimport

import (
	"context"
	"database/sql"
	"fmt"

	// Source databases are read through database/sql directly; the app's GORM
	// stack never touches the legacy schema.
	_ "github.com/lib/pq"
)

// SourceProduct is one row read from the legacy catalog, still in source
// terms (price as raw text, category as a display name).
type SourceProduct struct {
	Title        string
	Description  string
	RawPrice     string
	SKU          string
	ImageURL     string
	CategoryName string
}

// SourceReader streams legacy products per an explicit mapping.
type SourceReader struct {
	db      *sql.DB
	mapping SourceMapping
}

// OpenSource connects to the legacy database.
func OpenSource(dsn string, mapping SourceMapping) (*SourceReader, error) {
	if dsn == "" {
		return nil, fmt.Errorf("source DSN is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	return &SourceReader{db: db, mapping: mapping}, nil
}

// Close releases the source connection.
func (r *SourceReader) Close() error {
	return r.db.Close()
}

// ReadAll loads every legacy product. The legacy catalogs this tool targets
// are small enough that streaming in batches is not worth the machinery.
func (r *SourceReader) ReadAll(ctx context.Context) ([]SourceProduct, error) {
	m := r.mapping
	query := fmt.Sprintf(
		`SELECT COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s::text, ''), COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, '') FROM %s`,
		m.TitleColumn, m.DescriptionColumn, m.PriceColumn, m.SKUColumn, m.ImageColumn, m.CategoryColumn, m.Table,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying source table %s: %w", m.Table, err)
	}
	defer rows.Close()

	var products []SourceProduct
	for rows.Next() {
		var p SourceProduct
		if err := rows.Scan(&p.Title, &p.Description, &p.RawPrice, &p.SKU, &p.ImageURL, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("scanning source row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source rows: %w", err)
	}
	return products, nil
}
