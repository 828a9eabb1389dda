// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpin "github.com/Alanove07/designbynexa/internal/adapters/in/http"
	appcfg "github.com/Alanove07/designbynexa/internal/infra/config"
	"github.com/Alanove07/designbynexa/internal/infra/logging"
	"github.com/Alanove07/designbynexa/internal/platform/di"
)

func main() {
	// .env はローカル開発用（無くてもよい）
	_ = godotenv.Load()

	cfg, err := appcfg.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("[boot] config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.Must(cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	// SIGINT / SIGTERM で ctx がキャンセルされる
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// /healthz は DI の成否に関係なく返す（Cloud Run の起動確認用）
	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	cont, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("[boot] WARN: container init failed; only /healthz is served", zap.Error(err))
	} else {
		defer cont.Close()
		root.Handle("/", httpin.NewRouter(cont.RouterDeps()))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("[boot] listening",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("catalogBackend", cfg.CatalogBackend),
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[boot] server error", zap.Error(err))
			os.Exit(1)
		}
		return
	case <-ctx.Done():
		logger.Info("[boot] shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("[boot] graceful shutdown failed", zap.Error(err))
	}
	logger.Info("[boot] server stopped")
}
