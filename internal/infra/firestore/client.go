// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Options は Firestore 接続の設定です。
type Options struct {
	ProjectID string
	// 空なら ADC
	CredentialsFile string
	// readiness 確認で 1 件だけ読むコレクション（空なら "services"）
	ProbeCollection string
}

// ClientWrapper は Firestore クライアントと接続設定を保持します。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
	probe     string
}

func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*ClientWrapper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	projectID := strings.TrimSpace(opts.ProjectID)
	if projectID == "" {
		return nil, errors.New("firestore: project id is empty")
	}

	var clientOpts []option.ClientOption
	if f := strings.TrimSpace(opts.CredentialsFile); f != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(f))
	}
	client, err := firestore.NewClient(ctx, projectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: new client (project=%s): %w", projectID, err)
	}

	probe := strings.TrimSpace(opts.ProbeCollection)
	if probe == "" {
		probe = "services"
	}
	logger.Info("[firestore] client ready", zap.String("project", projectID))
	return &ClientWrapper{Client: client, ProjectID: projectID, probe: probe}, nil
}

// Ping は probe コレクションを最大 1 件読みます。空のコレクションでも成功です。
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return errors.New("firestore: client is nil")
	}
	it := cw.Client.Collection(cw.probe).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore: ping %s: %w", cw.probe, err)
	}
	return nil
}

func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
