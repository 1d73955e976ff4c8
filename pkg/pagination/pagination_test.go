package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+500))
}

func TestNormalizeLimitDefault(t *testing.T) {
	assert.Equal(t, MaxLimit, NormalizeLimitDefault(0, MaxLimit))
	assert.Equal(t, MaxLimit, NormalizeLimitDefault(-1, MaxLimit))
	assert.Equal(t, 10, NormalizeLimitDefault(10, MaxLimit))
	assert.Equal(t, MaxLimit, NormalizeLimitDefault(MaxLimit+500, 50))
}
