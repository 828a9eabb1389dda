// internal/adapters/out/db/document_store_pg.go
package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// DocumentStorePG は common.DocumentStore を PostgreSQL の JSONB で実装します。
// 全コレクションを 1 テーブルに保存し、List は挿入順（seq）で返します。
type DocumentStorePG struct {
	DB    *sql.DB
	newID func() string
}

func NewDocumentStorePG(db *sql.DB) *DocumentStorePG {
	return &DocumentStorePG{DB: db, newID: uuid.NewString}
}

var (
	_ common.DocumentStore  = (*DocumentStorePG)(nil)
	_ common.DocumentSetter = (*DocumentStorePG)(nil)
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_documents (
    collection  TEXT        NOT NULL,
    id          TEXT        NOT NULL,
    seq         BIGSERIAL,
    data        JSONB       NOT NULL DEFAULT '{}'::jsonb,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS catalog_documents_collection_seq_idx
    ON catalog_documents (collection, seq);
`

// EnsureSchema はテーブルが無ければ作成します。
func (s *DocumentStorePG) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schemaSQL); err != nil {
		return wrapPQ("ensure schema", err)
	}
	return nil
}

// ServerTimestamp のキーは now() の JSON 表現で上書きする
const withServerTime = `$3::jsonb || COALESCE(
    (SELECT jsonb_object_agg(k, to_jsonb(now())) FROM unnest($4::text[]) AS k),
    '{}'::jsonb)`

func (s *DocumentStorePG) List(ctx context.Context, collection string) ([]common.Document, error) {
	col, err := normalizeCollection(collection)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, data FROM catalog_documents WHERE collection = $1 ORDER BY seq ASC`, col)
	if err != nil {
		return nil, wrapPQ("list "+col, err)
	}
	defer rows.Close()

	var out []common.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, wrapPQ("scan "+col, err)
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", col, id, err)
		}
		out = append(out, common.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPQ("list "+col, err)
	}
	return out, nil
}

func (s *DocumentStorePG) Insert(ctx context.Context, collection string, rec common.Record) (string, error) {
	col, err := normalizeCollection(collection)
	if err != nil {
		return "", err
	}
	body, tsKeys, err := encodeData(rec)
	if err != nil {
		return "", err
	}

	id := s.newID()
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO catalog_documents (collection, id, data) VALUES ($1, $2, `+withServerTime+`)`,
		col, id, string(body), pq.Array(tsKeys))
	if err != nil {
		return "", wrapPQ("insert "+col, err)
	}
	return id, nil
}

// Set は ID を指定して保存します（seed 用。既存 ID は上書き）。
func (s *DocumentStorePG) Set(ctx context.Context, collection, id string, rec common.Record) error {
	col, err := normalizeCollection(collection)
	if err != nil {
		return err
	}
	body, tsKeys, err := encodeData(rec)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO catalog_documents (collection, id, data) VALUES ($1, $2, `+withServerTime+`)
         ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		col, strings.TrimSpace(id), string(body), pq.Array(tsKeys))
	if err != nil {
		return wrapPQ("set "+col, err)
	}
	return nil
}

func (s *DocumentStorePG) Update(ctx context.Context, collection string, id string, rec common.Record) error {
	col, err := normalizeCollection(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}
	body, tsKeys, err := encodeData(rec)
	if err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE catalog_documents SET data = `+withServerTime+`, updated_at = now()
         WHERE collection = $1 AND id = $2`,
		col, id, string(body), pq.Array(tsKeys))
	if err != nil {
		return wrapPQ("update "+col, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapPQ("update "+col, err)
	}
	if n == 0 {
		return common.ErrDocumentNotFound
	}
	return nil
}

// Delete は存在しない ID でもエラーにしません。
func (s *DocumentStorePG) Delete(ctx context.Context, collection string, id string) error {
	col, err := normalizeCollection(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}
	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM catalog_documents WHERE collection = $1 AND id = $2`, col, id); err != nil {
		return wrapPQ("delete "+col, err)
	}
	return nil
}

// ========================================
// helpers
// ========================================

func normalizeCollection(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", common.ErrInvalidCollection
	}
	return c, nil
}

// encodeData は ServerTimestamp のキーを取り除いた JSON と、そのキー一覧を返します。
func encodeData(rec common.Record) ([]byte, []string, error) {
	plain := make(map[string]any, len(rec))
	tsKeys := []string{}
	for k, v := range rec {
		if common.IsServerTimestamp(v) {
			tsKeys = append(tsKeys, k)
			continue
		}
		plain[k] = v
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return nil, nil, fmt.Errorf("encode record: %w", err)
	}
	return b, tsKeys, nil
}

// decodeData は数値を json.Number のまま読みます（order などの整数を float に丸めない）。
func decodeData(raw []byte) (common.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return common.Record(m), nil
}

// wrapPQ は pq.Error のコード名をメッセージに含めます。
func wrapPQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s (%s): %w", op, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("postgres %s: %w", op, err)
}
