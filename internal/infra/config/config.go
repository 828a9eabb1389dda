// internal/infra/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// カタログストアの実装
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// GCP / Firebase
	GCPProjectID             string
	FirestoreProjectID       string
	FirebaseProjectID        string
	GCPCreds                 string
	FirestoreCredentialsFile string

	// カタログストア（firestore | postgres | memory）
	CatalogBackend  string
	DatabaseURL     string
	CatalogCacheTTL time.Duration

	// 画像アップロード（空ならメモリ上の ObjectStore）
	StorageBucket        string
	StoragePublicBaseURL string
	UploadPrefix         string

	// HTTP
	CORSAllowedOrigins []string
	LoginPath          string

	// Mail
	EmailAPIEndpoint     string
	SendGridAPIKey       string
	SendGridAPIKeySecret string
	MailFrom             string
	MailFromName         string
	ContactNotifyEmail   string
	SiteURL              string
}

// Load は環境変数を読み込み Config を返します。
func Load() (*Config, error) {
	// ベースとなる GCP プロジェクト ID
	defaultProject := getenvDefault("GCP_PROJECT_ID", "designbynexa")

	ttl, err := time.ParseDuration(getenvDefault("CATALOG_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("config: CATALOG_CACHE_TTL: %w", err)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("config: CATALOG_CACHE_TTL must not be negative: %s", ttl)
	}

	cfg := &Config{
		Port:     getenvDefault("PORT", "8080"),
		Env:      getenvDefault("ENV", "development"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		CatalogBackend:  strings.ToLower(getenvDefault("CATALOG_BACKEND", BackendFirestore)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CatalogCacheTTL: ttl,

		StorageBucket:        strings.TrimSpace(os.Getenv("STORAGE_BUCKET")),
		StoragePublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
		UploadPrefix:         os.Getenv("UPLOAD_PREFIX"),

		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://designbynexa.com")),
		LoginPath:          getenvDefault("LOGIN_PATH", "/admin"),

		EmailAPIEndpoint:     os.Getenv("EMAIL_API_ENDPOINT"),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		MailFrom:             getenvDefault("MAIL_FROM", "hello@designbynexa.com"),
		MailFromName:         getenvDefault("MAIL_FROM_NAME", "Nexa Designs"),
		ContactNotifyEmail:   os.Getenv("CONTACT_NOTIFY_EMAIL"),
		SiteURL:              getenvDefault("SITE_URL", "https://designbynexa.com"),
	}

	switch cfg.CatalogBackend {
	case BackendFirestore, BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when CATALOG_BACKEND=%s", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("config: unknown CATALOG_BACKEND %q", cfg.CatalogBackend)
	}

	return cfg, nil
}

// IsProduction は本番環境かどうか
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
