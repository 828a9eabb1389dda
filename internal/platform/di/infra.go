// internal/platform/di/infra.go
package di

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	appcfg "github.com/Alanove07/designbynexa/internal/infra/config"
	"github.com/Alanove07/designbynexa/internal/infra/database"
	firestoreinfra "github.com/Alanove07/designbynexa/internal/infra/firestore"
)

// Infra は外部クライアント（Firestore / Postgres / GCS / Firebase Auth / Secret Manager）を所有します。
//   - カタログストア（CATALOG_BACKEND）と GCS（STORAGE_BUCKET 指定時）は strict
//   - Firebase Auth と Secret Manager は best-effort（warn して続行）
type Infra struct {
	Config    *appcfg.Config
	ProjectID string
	Logger    *zap.Logger

	// Close で閉じるクライアント（未使用のものは nil）
	Firestore     *firestoreinfra.ClientWrapper
	DB            *database.DB
	GCS           *storage.Client
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
}

// NewInfra は API サーバー用のクライアント一式を作ります。
func NewInfra(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di.infra: config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("infra")

	inf := &Infra{
		Config:    cfg,
		ProjectID: strings.TrimSpace(cfg.FirestoreProjectID),
		Logger:    logger,
	}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		logger.Info("[infra] using credentials file for GCP clients", zap.String("file", redactPath(credFile)))
	} else {
		logger.Info("[infra] using Application Default Credentials")
	}

	// 1) Catalog store backend (strict)
	if err := inf.openCatalogBackend(ctx, credFile); err != nil {
		return nil, err
	}

	// 2) GCS (strict when a bucket is configured)
	if cfg.StorageBucket != "" {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		logger.Info("[infra] GCS storage client initialized", zap.String("bucket", cfg.StorageBucket))
	} else {
		logger.Warn("[infra] WARN: STORAGE_BUCKET is empty; uploads are kept in memory")
	}

	// 3) Secret Manager (best-effort; only when a secret is referenced)
	if strings.TrimSpace(cfg.SendGridAPIKeySecret) != "" && strings.TrimSpace(cfg.SendGridAPIKey) == "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			logger.Warn("[infra] WARN: secretmanager.NewClient failed", zap.Error(err))
		} else {
			inf.SecretManager = sm
		}
	}

	// 4) Firebase App/Auth (best-effort)
	{
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...)
		if err != nil {
			logger.Warn("[infra] WARN: firebase app init failed; admin API will deny all requests", zap.Error(err))
		} else if authClient, err := fbApp.Auth(ctx); err != nil {
			logger.Warn("[infra] WARN: firebase auth init failed; admin API will deny all requests", zap.Error(err))
		} else {
			inf.FirebaseAuth = authClient
			logger.Info("[infra] Firebase Auth initialized", zap.String("project", cfg.FirebaseProjectID))
		}
	}

	return inf, nil
}

// NewStoreInfra はカタログストアのクライアントだけを開きます（seed CLI 用）。
func NewStoreInfra(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di.infra: config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	inf := &Infra{
		Config:    cfg,
		ProjectID: strings.TrimSpace(cfg.FirestoreProjectID),
		Logger:    logger.Named("infra"),
	}
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	if err := inf.openCatalogBackend(ctx, credFile); err != nil {
		return nil, err
	}
	return inf, nil
}

func (i *Infra) openCatalogBackend(ctx context.Context, credFile string) error {
	switch i.Config.CatalogBackend {
	case appcfg.BackendFirestore:
		if i.ProjectID == "" {
			return fmt.Errorf("di.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
		}
		fs, err := firestoreinfra.NewClient(ctx, firestoreinfra.Options{
			ProjectID:       i.ProjectID,
			CredentialsFile: credFile,
		}, i.Logger)
		if err != nil {
			return fmt.Errorf("di.infra: firestore (project=%s): %w", i.ProjectID, err)
		}
		i.Firestore = fs
	case appcfg.BackendPostgres:
		db, err := database.Open(ctx, i.Config.DatabaseURL, database.PoolOptions{}, i.Logger)
		if err != nil {
			return fmt.Errorf("di.infra: postgres: %w", err)
		}
		i.DB = db
	case appcfg.BackendMemory:
		i.Logger.Warn("[infra] WARN: CATALOG_BACKEND=memory; catalog edits are lost on restart")
	}
	return nil
}

// Ready はカタログストアの疎通を確認します（/readyz）。memory バックエンドは常に成功です。
func (i *Infra) Ready(ctx context.Context) error {
	switch {
	case i == nil:
		return fmt.Errorf("di.infra: not initialized")
	case i.Firestore != nil:
		return i.Firestore.Ping(ctx)
	case i.DB != nil:
		return i.DB.Ping(ctx)
	default:
		return nil
	}
}

// FirestoreClient は Firestore のクライアント（未使用なら nil）です。
func (i *Infra) FirestoreClient() *firestore.Client {
	if i == nil || i.Firestore == nil {
		return nil
	}
	return i.Firestore.Client
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

func redactPath(p string) string {
	// ログにはファイル名だけを出す
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
