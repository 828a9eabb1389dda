// internal/adapters/in/http/handlers/object_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// ObjectReader はプロセス内に保存したアップロードを読み出します（STORAGE_BUCKET 未設定時）。
type ObjectReader interface {
	Read(key string) (contentType string, data []byte, ok bool)
}

// ObjectHandler は GET <prefix>/<key> でアップロード済みの画像を返します。
type ObjectHandler struct {
	objects ObjectReader
	prefix  string
}

func NewObjectHandler(objects ObjectReader, prefix string) *ObjectHandler {
	return &ObjectHandler{objects: objects, prefix: "/" + strings.Trim(prefix, "/") + "/"}
}

func (h *ObjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, h.prefix)
	if key == "" || key == r.URL.Path {
		http.NotFound(w, r)
		return
	}
	ct, data, ok := h.objects.Read(key)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}
