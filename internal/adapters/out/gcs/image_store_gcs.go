// internal/adapters/out/gcs/image_store_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// ImageStoreGCS is a GCS adapter for catalog images (portfolio images / service icons).
//
// Layout (single bucket):
//   - portfolio/<unixMillis>_<fileName>
//   - services/<unixMillis>_<fileName>
//   - uploads/<unixMillis>_<fileName>
//
// Public access:
//   - The bucket is expected to grant "allUsers: Storage Object Viewer" (uniform access),
//     so uploaded objects are readable without per-object ACL changes.
type ImageStoreGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com/<bucket>
	PublicBaseURL string
	// Cache-Control for uploaded objects
	CacheControl string
}

func NewImageStoreGCS(client *storage.Client, bucket, publicBaseURL string) *ImageStoreGCS {
	return &ImageStoreGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		CacheControl:  "public, max-age=31536000",
	}
}

var _ common.ObjectStore = (*ImageStoreGCS)(nil)

func (r *ImageStoreGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("image_store_gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return nil, errors.New("image_store_gcs: bucket is empty")
	}
	return r.Client.Bucket(r.Bucket), nil
}

// Put uploads data to key. The object is overwritten if it already exists.
func (r *ImageStoreGCS) Put(ctx context.Context, key, contentType string, data []byte) error {
	bh, err := r.bucket()
	if err != nil {
		return err
	}
	objPath, err := cleanObjectPath(key)
	if err != nil {
		return err
	}

	w := bh.Object(objPath).NewWriter(ctx)
	w.ContentType = strings.TrimSpace(contentType)
	if w.ContentType == "" {
		w.ContentType = "application/octet-stream"
	}
	w.CacheControl = r.CacheControl

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("image_store_gcs: write %s: %w", objPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("image_store_gcs: close %s: %w", objPath, err)
	}
	return nil
}

// PublicURL returns the public URL of key.
func (r *ImageStoreGCS) PublicURL(key string) string {
	objPath, err := cleanObjectPath(key)
	if err != nil {
		objPath = strings.TrimLeft(key, "/")
	}
	if r.PublicBaseURL != "" {
		return r.PublicBaseURL + "/" + escapeObjectPath(objPath)
	}
	return defaultPublicBaseURL + "/" + r.Bucket + "/" + escapeObjectPath(objPath)
}
