package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CATALOG_BACKEND", "CATALOG_CACHE_TTL", "GCP_PROJECT_ID", "FIRESTORE_PROJECT_ID", "LOGIN_PATH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendFirestore, cfg.CatalogBackend)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, "designbynexa", cfg.FirestoreProjectID)
	assert.Equal(t, "/admin", cfg.LoginPath)
	assert.Equal(t, []string{"http://localhost:5173", "https://designbynexa.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "studio-prod")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("CATALOG_BACKEND", "Memory")
	t.Setenv("CATALOG_CACHE_TTL", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "studio-prod", cfg.FirebaseProjectID)
	assert.Equal(t, BackendMemory, cfg.CatalogBackend)
	assert.Zero(t, cfg.CatalogCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "memory")
		t.Setenv("CATALOG_CACHE_TTL", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("CATALOG_CACHE_TTL", "")
		t.Setenv("CATALOG_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("CATALOG_CACHE_TTL", "")
		t.Setenv("CATALOG_BACKEND", "mongo")
		_, err := Load()
		assert.ErrorContains(t, err, "mongo")
	})
}
