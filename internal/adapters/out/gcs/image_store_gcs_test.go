package gcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	s := NewImageStoreGCS(nil, "nexa-assets", "")
	assert.Equal(t,
		"https://storage.googleapis.com/nexa-assets/portfolio/1700000000000_my%20logo.png",
		s.PublicURL("portfolio/1700000000000_my logo.png"))

	cdn := NewImageStoreGCS(nil, "nexa-assets", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/services/1_icon.svg", cdn.PublicURL("/services/1_icon.svg"))
}

func TestCleanObjectPath(t *testing.T) {
	p, err := cleanObjectPath("/portfolio/1_a.png")
	assert.NoError(t, err)
	assert.Equal(t, "portfolio/1_a.png", p)

	for _, bad := range []string{"", "portfolio//a.png", "portfolio/../secret", "./a", "portfolio/ . "} {
		_, err := cleanObjectPath(bad)
		assert.ErrorIs(t, err, errInvalidObjectPath, bad)
	}
}

func TestSanitizePathSegment(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizePathSegment(` a/b\c `))
	assert.Equal(t, "", sanitizePathSegment(" .. "))
}

func TestPut_RequiresClient(t *testing.T) {
	s := NewImageStoreGCS(nil, "b", "")
	assert.Error(t, s.Put(context.Background(), "a/b.png", "image/png", []byte{1}))
}
