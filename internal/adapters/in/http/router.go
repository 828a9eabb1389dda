// internal/adapters/in/http/router.go
package httpin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Alanove07/designbynexa/internal/adapters/in/http/handlers"
	"github.com/Alanove07/designbynexa/internal/adapters/in/http/middleware"
	"github.com/Alanove07/designbynexa/internal/adapters/out/mail"
	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

// LocalUploadsPath はインメモリのオブジェクトストアを配信するパスです。
const LocalUploadsPath = "/uploads"

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	Logger *zap.Logger

	// Catalog
	Loader       *usecase.CatalogLoader
	Store        catalogdom.Store
	Objects      catalogdom.ObjectStore
	UploadPrefix string

	// Contact / Mail（nil ならマウントしない）
	ContactUC *usecase.ContactUsecase
	Mailer    *mail.Mailer

	// Admin gate
	Sessions  middleware.SessionSourceFactory
	LoginPath string

	CORSAllowedOrigins []string

	// Ready はストアの疎通確認です（nil なら /readyz は常に ok）。
	Ready func(ctx context.Context) error
}

// NewRouter sets up HTTP routing.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(deps.CORSAllowedOrigins))

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", readyHandler(deps.Ready, logger))

	// バケット未設定時のアップロード配信（PublicURL と同じパス）
	if rd, ok := deps.Objects.(handlers.ObjectReader); ok {
		served := handlers.NewObjectHandler(rd, LocalUploadsPath)
		r.Method(http.MethodGet, LocalUploadsPath+"/*", served)
		r.Method(http.MethodHead, LocalUploadsPath+"/*", served)
	}

	// ------------------------------------------------------------
	// Public
	// ------------------------------------------------------------
	r.Route("/api", func(api chi.Router) {
		if deps.Loader != nil {
			handlers.NewCatalogHandler(deps.Loader).Register(api)
		}
		if deps.ContactUC != nil {
			api.Method(http.MethodPost, "/contact", handlers.NewContactHandler(deps.ContactUC))
		}
		api.Route("/chat", handlers.NewChatHandler().Register)
	})

	// ------------------------------------------------------------
	// Admin (behind the gate)
	// ------------------------------------------------------------
	gate := &middleware.AdminGate{
		Sessions:  deps.Sessions,
		LoginPath: deps.LoginPath,
		Logger:    logger.Named("admin_gate"),
	}
	r.Route("/admin/api", func(admin chi.Router) {
		admin.Use(gate.Handler)

		admin.Get("/session", handlers.SessionHandler)

		if deps.Loader != nil && deps.Store != nil {
			catDeps := handlers.AdminCatalogDeps{
				Loader:       deps.Loader,
				Store:        deps.Store,
				Objects:      deps.Objects,
				UploadPrefix: deps.UploadPrefix,
				Logger:       logger,
			}
			admin.Route("/portfolio", handlers.NewAdminCatalogHandler(catalogdom.CollectionPortfolio, catDeps).Register)
			admin.Route("/services", handlers.NewAdminCatalogHandler(catalogdom.CollectionServices, catDeps).Register)
		}
		admin.Method(http.MethodPost, "/uploads", handlers.NewUploadHandler(deps.Objects, logger))

		if deps.Mailer != nil {
			admin.Route("/emails", handlers.NewEmailHandler(deps.Mailer).Register)
		}
	})

	return r
}

func readyHandler(ready func(ctx context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logger.Warn("[router] readiness check failed", zap.Error(err))
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
