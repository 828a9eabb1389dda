// internal/adapters/out/memstore/object_store_mem.go
package memstore

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

// Object は保存済みの blob
type Object struct {
	ContentType string
	Data        []byte
}

// ObjectStore は common.ObjectStore のインメモリ実装です。
// バケット未設定のローカル起動とテストで使います。
type ObjectStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

func NewObjectStore(baseURL string) *ObjectStore {
	b := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if b == "" {
		b = "http://localhost/uploads"
	}
	return &ObjectStore{baseURL: b, objects: map[string]Object{}}
}

func (s *ObjectStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{ContentType: contentType, Data: append([]byte(nil), data...)}
	return nil
}

func (s *ObjectStore) PublicURL(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

// Get は保存済みオブジェクトを返します。
func (s *ObjectStore) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	return o, ok
}

// Keys は保存済みキーの一覧です。
func (s *ObjectStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}

// Read は HTTP 配信用に content type とデータのコピーを返します。
func (s *ObjectStore) Read(key string) (string, []byte, bool) {
	o, ok := s.Get(key)
	if !ok {
		return "", nil, false
	}
	return o.ContentType, append([]byte(nil), o.Data...), true
}
