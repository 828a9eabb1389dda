// internal/adapters/in/http/handlers/upload_handler.go
package handlers

import (
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

// UploadHandler は単体の画像アップロード（POST /admin/api/uploads）です。
// multipart の "file"（または "image"）を "<folder>/<unixMillis>_<name>" に保存します。
type UploadHandler struct {
	objects catalogdom.ObjectStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewUploadHandler(objects catalogdom.ObjectStore, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{objects: objects, logger: logger, now: time.Now}
}

var allowedFolders = map[string]bool{
	"uploads":   true,
	"portfolio": true,
	"services":  true,
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.objects == nil {
		writeError(w, http.StatusServiceUnavailable, "object store not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		file, hdr, err = r.FormFile("image")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	folder := strings.Trim(strings.TrimSpace(r.FormValue("folder")), "/")
	if folder == "" {
		folder = "uploads"
	}
	if !allowedFolders[folder] {
		writeError(w, http.StatusBadRequest, "invalid folder")
		return
	}

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(hdr.Filename), "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read file")
		return
	}

	key := folder + "/" + strconv.FormatInt(h.now().UnixMilli(), 10) + "_" + name
	if err := h.objects.Put(r.Context(), key, hdr.Header.Get("Content-Type"), data); err != nil {
		h.logger.Error("[upload] put failed", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": h.objects.PublicURL(key),
	})
}
