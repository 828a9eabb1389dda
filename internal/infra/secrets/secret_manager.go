// internal/infra/secrets/secret_manager.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var ErrNotConfigured = errors.New("secrets: secret manager not configured")

// accessor は *secretmanager.Client の AccessSecretVersion だけを使う
type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

var _ accessor = (*secretmanager.Client)(nil)

// Resolver は Secret Manager から文字列シークレットを取り出します。
type Resolver struct {
	sm        accessor
	projectID string
}

func NewResolver(sm *secretmanager.Client, projectID string) *Resolver {
	r := &Resolver{projectID: strings.TrimSpace(projectID)}
	if sm != nil {
		r.sm = sm
	}
	return r
}

// SecretName は "projects/<p>/secrets/<id>/versions/<ver>" を組み立てます。
// ref がすでに "projects/" で始まる完全名ならそのまま使います。
func SecretName(projectID, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("secrets: secret id is empty")
	}
	if strings.HasPrefix(ref, "projects/") {
		if !strings.Contains(ref, "/versions/") {
			ref += "/versions/latest"
		}
		return ref, nil
	}
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.New("secrets: projectID is empty")
	}
	id, ver, _ := strings.Cut(ref, ":")
	if ver = strings.TrimSpace(ver); ver == "" {
		ver = "latest"
	}
	return "projects/" + prj + "/secrets/" + strings.TrimSpace(id) + "/versions/" + ver, nil
}

// Access はシークレットの値（前後の空白を除く）を返します。
func (r *Resolver) Access(ctx context.Context, ref string) (string, error) {
	if r == nil || r.sm == nil {
		return "", ErrNotConfigured
	}
	name, err := SecretName(r.projectID, ref)
	if err != nil {
		return "", err
	}
	resp, err := r.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secrets: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secrets: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
