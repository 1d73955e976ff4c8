package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can return. Bounding response
	// size is a resource-protection policy, not business logic.
	MaxLimit = 100
)

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	return NormalizeLimitDefault(limit, DefaultLimit)
}

// NormalizeLimitDefault is NormalizeLimit with a caller-chosen fallback for
// listings whose page size differs from the standard default.
func NormalizeLimitDefault(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
