package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	services := DefaultServices()
	portfolio := DefaultPortfolio()

	require.Len(t, services, 6)
	require.Len(t, portfolio, 3)
	assert.Equal(t, "Logo & Branding", services[0].Title)
	assert.Equal(t, CategoryIllustrations, portfolio[2].Category)
	for _, p := range portfolio {
		assert.True(t, IsKnownCategory(p.Category))
		assert.Nil(t, p.CreatedAt)
	}
}

func TestDefaults_ReturnCopies(t *testing.T) {
	first := DefaultPortfolio()
	first[0].Title = "mutated"
	first[0].Tags[0] = "mutated"

	again := DefaultPortfolio()
	assert.Equal(t, "Minimalist Gradient Design", again[0].Title)
	assert.Equal(t, "Gradient", again[0].Tags[0])
}
