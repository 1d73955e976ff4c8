package types

// JSONMap is an open key-value document persisted as jsonb via the GORM json
// serializer. Used for product attributes, order meta, and line item attributes.
type JSONMap map[string]any
