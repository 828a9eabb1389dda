// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	httpin "github.com/Alanove07/designbynexa/internal/adapters/in/http"
	dbadapter "github.com/Alanove07/designbynexa/internal/adapters/out/db"
	"github.com/Alanove07/designbynexa/internal/adapters/out/firebaseauth"
	fsadapter "github.com/Alanove07/designbynexa/internal/adapters/out/firestore"
	gcsadapter "github.com/Alanove07/designbynexa/internal/adapters/out/gcs"
	"github.com/Alanove07/designbynexa/internal/adapters/out/mail"
	"github.com/Alanove07/designbynexa/internal/adapters/out/memstore"
	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	authuc "github.com/Alanove07/designbynexa/internal/application/usecase/auth"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	common "github.com/Alanove07/designbynexa/internal/domain/common"
	appcfg "github.com/Alanove07/designbynexa/internal/infra/config"
	"github.com/Alanove07/designbynexa/internal/infra/secrets"
)

// Container は main.go から使う依存オブジェクトの束です。
type Container struct {
	Config *appcfg.Config
	Logger *zap.Logger
	Infra  *Infra

	// Ports
	Store   catalogdom.Store
	Setter  common.DocumentSetter
	Objects catalogdom.ObjectStore

	// Usecases
	Loader    *usecase.CatalogLoader
	ContactUC *usecase.ContactUsecase
	Seeder    *usecase.CatalogSeeder
	Mailer    *mail.Mailer
}

// NewContainer は外部クライアント、ストア、ユースケースを組み立てます。
func NewContainer(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	inf, err := NewInfra(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, Infra: inf}

	// ------------------------------------------------------------
	// 1. Stores
	// ------------------------------------------------------------
	c.Store, c.Setter, err = NewStores(ctx, cfg, inf)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}

	if inf.GCS != nil {
		c.Objects = gcsadapter.NewImageStoreGCS(inf.GCS, cfg.StorageBucket, cfg.StoragePublicBaseURL)
	} else {
		base := localUploadsBaseURL(cfg)
		logger.Warn("[di] WARN: STORAGE_BUCKET is empty; uploads are kept in memory and served by this process",
			zap.String("baseURL", base),
		)
		c.Objects = memstore.NewObjectStore(base)
	}

	// ------------------------------------------------------------
	// 2. Mail
	// ------------------------------------------------------------
	apiKey := strings.TrimSpace(cfg.SendGridAPIKey)
	if apiKey == "" && inf.SecretManager != nil {
		v, err := secrets.NewResolver(inf.SecretManager, inf.ProjectID).Access(ctx, cfg.SendGridAPIKeySecret)
		if err != nil {
			logger.Warn("[di] WARN: SendGrid key secret not resolved", zap.Error(err))
		} else {
			apiKey = v
		}
	}
	client := mail.NewEmailClient(mail.ClientOptions{
		EndpointURL:    cfg.EmailAPIEndpoint,
		SendGridAPIKey: apiKey,
	}, logger)
	mailer, err := mail.NewMailer(client, mail.MailerConfig{
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		NotifyTo: cfg.ContactNotifyEmail,
		SiteURL:  cfg.SiteURL,
	}, logger)
	if err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("di: mailer: %w", err)
	}
	c.Mailer = mailer

	// ------------------------------------------------------------
	// 3. Usecases
	// ------------------------------------------------------------
	c.Loader = usecase.NewCatalogLoader(c.Store, logger, cfg.CatalogCacheTTL)
	c.ContactUC = usecase.NewContactUsecase(c.Store, mailer, logger)
	c.Seeder, err = usecase.NewCatalogSeeder(c.Store, c.Setter, logger)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}

	// メモリ実装は空で起動するので、管理画面で編集できるようにデフォルトを投入しておく
	if cfg.CatalogBackend == appcfg.BackendMemory {
		if _, err := c.Seeder.Seed(ctx, usecase.SeedOptions{}); err != nil {
			logger.Warn("[di] WARN: seeding memory store failed", zap.Error(err))
		}
	}

	return c, nil
}

// NewStores は CATALOG_BACKEND に応じたドキュメントストアを返します。
func NewStores(ctx context.Context, cfg *appcfg.Config, inf *Infra) (catalogdom.Store, common.DocumentSetter, error) {
	switch cfg.CatalogBackend {
	case appcfg.BackendFirestore:
		if inf.FirestoreClient() == nil {
			return nil, nil, fmt.Errorf("di: firestore client is nil")
		}
		s := fsadapter.NewDocumentStoreFS(inf.FirestoreClient())
		return s, s, nil
	case appcfg.BackendPostgres:
		if inf.DB == nil {
			return nil, nil, fmt.Errorf("di: postgres connection is nil")
		}
		s := dbadapter.NewDocumentStorePG(inf.DB.Client)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("di: ensure schema: %w", err)
		}
		return s, s, nil
	default:
		s := memstore.NewDocumentStore()
		return s, s, nil
	}
}

// SessionSources はリクエストごとの Firebase ID トークン検証元を作ります。
// Firebase Auth が無い場合、検証器 nil のソースになり全リクエストが未認証になります。
func (c *Container) SessionSources() func(r *http.Request) authuc.SessionSource {
	var verifier firebaseauth.TokenVerifier
	if c.Infra != nil && c.Infra.FirebaseAuth != nil {
		verifier = c.Infra.FirebaseAuth
	}
	logger := c.Logger.Named("firebase_auth")
	return func(r *http.Request) authuc.SessionSource {
		return firebaseauth.FromRequest(r, verifier, logger)
	}
}

// localUploadsBaseURL はインメモリ保存時の公開 URL の基点です。
// STORAGE_PUBLIC_BASE_URL が無ければ http://localhost:<PORT>/uploads（router の配信パス）。
func localUploadsBaseURL(cfg *appcfg.Config) string {
	if b := strings.TrimRight(strings.TrimSpace(cfg.StoragePublicBaseURL), "/"); b != "" {
		return b
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "8080"
	}
	return "http://localhost:" + port + httpin.LocalUploadsPath
}

// RouterDeps は HTTP ルーターの依存関係を返します。
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		Logger:             c.Logger,
		Loader:             c.Loader,
		Store:              c.Store,
		Objects:            c.Objects,
		UploadPrefix:       c.Config.UploadPrefix,
		ContactUC:          c.ContactUC,
		Mailer:             c.Mailer,
		Sessions:           c.SessionSources(),
		LoginPath:          c.Config.LoginPath,
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
		Ready:              c.Infra.Ready,
	}
}

// Close は Cloud Run 終了時などに呼んで安全にリソースを閉じる。
func (c *Container) Close() {
	if c == nil {
		return
	}
	_ = c.Infra.Close()
	_ = c.Logger.Sync()
}
