package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

func TestParseCollections(t *testing.T) {
	cols, err := parseCollections([]string{"services", " portfolio "})
	require.NoError(t, err)
	assert.Equal(t, []catalogdom.Collection{catalogdom.CollectionServices, catalogdom.CollectionPortfolio}, cols)

	cols, err = parseCollections(nil)
	require.NoError(t, err)
	assert.Empty(t, cols)

	_, err = parseCollections([]string{"users"})
	assert.ErrorContains(t, err, "users")
}

func TestRootCmdFlags(t *testing.T) {
	for _, name := range []string{"collection", "dry-run", "force"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}
