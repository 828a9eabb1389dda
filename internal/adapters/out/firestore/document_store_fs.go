// internal/adapters/out/firestore/document_store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// ========================================
// Firestore DocumentStore Implementation
// ========================================

type DocumentStoreFS struct {
	Client *firestore.Client
}

func NewDocumentStoreFS(client *firestore.Client) *DocumentStoreFS {
	return &DocumentStoreFS{Client: client}
}

// Ensure interface implementation
var (
	_ common.DocumentStore  = (*DocumentStoreFS)(nil)
	_ common.DocumentSetter = (*DocumentStoreFS)(nil)
)

func (r *DocumentStoreFS) col(collection string) (*firestore.CollectionRef, error) {
	c := strings.TrimSpace(collection)
	if c == "" || strings.Contains(c, "/") {
		return nil, common.ErrInvalidCollection
	}
	return r.Client.Collection(c), nil
}

// ========================================
// List
// ========================================

func (r *DocumentStoreFS) List(ctx context.Context, collection string) ([]common.Document, error) {
	col, err := r.col(collection)
	if err != nil {
		return nil, err
	}

	iter := col.Documents(ctx)
	defer iter.Stop()

	var out []common.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list %s: %w", collection, err)
		}
		out = append(out, common.Document{ID: snap.Ref.ID, Data: common.Record(snap.Data())})
	}
	return out, nil
}

// ========================================
// Insert
// ========================================

func (r *DocumentStoreFS) Insert(ctx context.Context, collection string, rec common.Record) (string, error) {
	col, err := r.col(collection)
	if err != nil {
		return "", err
	}

	// Firestore: generate ID
	ref := col.NewDoc()
	if _, err := ref.Create(ctx, toDocData(rec)); err != nil {
		return "", fmt.Errorf("firestore insert %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Set は ID を指定して保存します（seed 用。既存ドキュメントは上書き）。
func (r *DocumentStoreFS) Set(ctx context.Context, collection, id string, rec common.Record) error {
	col, err := r.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}
	if _, err := col.Doc(id).Set(ctx, toDocData(rec)); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, id, err)
	}
	return nil
}

// ========================================
// Update (full overwrite)
// ========================================

func (r *DocumentStoreFS) Update(ctx context.Context, collection string, id string, rec common.Record) error {
	col, err := r.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}
	ref := col.Doc(id)
	data := toDocData(rec)

	// 存在確認と上書きを同じトランザクションで行う（存在しない ID で新規作成しない）
	err = r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return common.ErrDocumentNotFound
			}
			return err
		}
		return tx.Set(ref, data)
	})
	if errors.Is(err, common.ErrDocumentNotFound) {
		return common.ErrDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

// ========================================
// Delete
// ========================================

// Delete は存在しない ID でもエラーにしません（Firestore の仕様どおり）。
func (r *DocumentStoreFS) Delete(ctx context.Context, collection string, id string) error {
	col, err := r.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}
	if _, err := col.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// ========================================
// Mapping helpers
// ========================================

// toDocData は ServerTimestamp マーカーを firestore.ServerTimestamp に置き換えたコピーを返します。
func toDocData(rec common.Record) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		if common.IsServerTimestamp(v) {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}
