// internal/adapters/out/memstore/document_store_mem.go
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// DocumentStore は common.DocumentStore のインメモリ実装です（ローカル開発・テスト用）。
// List は挿入順で返します。
type DocumentStore struct {
	mu    sync.RWMutex
	cols  map[string][]common.Document
	now   func() time.Time
	newID func() string
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		cols:  map[string][]common.Document{},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock は ServerTimestamp の置き換えに使う時計を差し替えます。
func (s *DocumentStore) WithClock(now func() time.Time) *DocumentStore {
	s.now = now
	return s
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]common.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	col, err := normalizeCollection(collection)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.cols[col]
	out := make([]common.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, common.Document{ID: d.ID, Data: cloneRecord(d.Data)})
	}
	return out, nil
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, rec common.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	col, err := normalizeCollection(collection)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.cols[col] = append(s.cols[col], common.Document{ID: id, Data: s.resolve(rec)})
	return id, nil
}

// Put は ID を指定して保存します（seed 用。既存 ID は上書き）。
func (s *DocumentStore) Put(collection, id string, rec common.Record) {
	col := strings.TrimSpace(collection)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.cols[col] {
		if d.ID == id {
			s.cols[col][i].Data = s.resolve(rec)
			return
		}
	}
	s.cols[col] = append(s.cols[col], common.Document{ID: id, Data: s.resolve(rec)})
}

// Set は common.DocumentSetter 向けの Put です。
func (s *DocumentStore) Set(ctx context.Context, collection, id string, rec common.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := normalizeCollection(collection); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return common.ErrInvalidDocumentID
	}
	s.Put(collection, strings.TrimSpace(id), rec)
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, collection string, id string, rec common.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	col, err := normalizeCollection(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.cols[col] {
		if d.ID == id {
			// 全体上書き
			s.cols[col][i].Data = s.resolve(rec)
			return nil
		}
	}
	return common.ErrDocumentNotFound
}

// Delete は存在しない ID でもエラーにしません（Firestore と同じ挙動）。
func (s *DocumentStore) Delete(ctx context.Context, collection string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	col, err := normalizeCollection(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrInvalidDocumentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cols[col] = slices.DeleteFunc(s.cols[col], func(d common.Document) bool { return d.ID == id })
	return nil
}

// resolve は ServerTimestamp を現在時刻に置き換えたコピーを返します。
func (s *DocumentStore) resolve(rec common.Record) common.Record {
	out := cloneRecord(rec)
	for k, v := range out {
		if common.IsServerTimestamp(v) {
			out[k] = s.now().UTC()
		}
	}
	return out
}

func normalizeCollection(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", common.ErrInvalidCollection
	}
	return c, nil
}

func cloneRecord(rec common.Record) common.Record {
	out := make(common.Record, len(rec))
	for k, v := range rec {
		switch t := v.(type) {
		case []string:
			out[k] = slices.Clone(t)
		case []any:
			out[k] = slices.Clone(t)
		default:
			out[k] = v
		}
	}
	return out
}
