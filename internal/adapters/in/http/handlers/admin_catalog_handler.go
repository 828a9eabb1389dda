// internal/adapters/in/http/handlers/admin_catalog_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// 一覧の読み出し失敗（管理画面ではフォールバックしない）
var errStoreUnavailable = errors.New("catalog store unavailable")

// AdminCatalogHandler は 1 コレクション分の管理 API です。
// 書き込みはすべて CatalogEditor を通し、Editor はリクエストごとに作ります。
//
//	GET    /                 一覧（フォールバックなし）
//	POST   /                 新規作成（JSON または multipart + image）
//	GET    /new              新規作成フォームの初期値
//	GET    /{id}/draft       編集フォームの初期値
//	PUT    /{id}             更新（全体上書き）
//	DELETE /{id}?confirm=true
//	GET    /options          services のみ: アイコン / カラー選択肢
type AdminCatalogHandler struct {
	collection   catalogdom.Collection
	loader       *usecase.CatalogLoader
	store        catalogdom.Store
	objects      catalogdom.ObjectStore
	uploadPrefix string
	logger       *zap.Logger
}

// AdminCatalogDeps は AdminCatalogHandler の依存関係です。
type AdminCatalogDeps struct {
	Loader       *usecase.CatalogLoader
	Store        catalogdom.Store
	Objects      catalogdom.ObjectStore
	UploadPrefix string
	Logger       *zap.Logger
}

func NewAdminCatalogHandler(c catalogdom.Collection, deps AdminCatalogDeps) *AdminCatalogHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminCatalogHandler{
		collection:   c,
		loader:       deps.Loader,
		store:        deps.Store,
		objects:      deps.Objects,
		uploadPrefix: deps.UploadPrefix,
		logger:       logger,
	}
}

func (h *AdminCatalogHandler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/new", h.blank)
	if h.collection == catalogdom.CollectionServices {
		r.Get("/options", h.options)
	}
	r.Get("/{id}/draft", h.draft)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *AdminCatalogHandler) newEditor() (*usecase.CatalogEditor, error) {
	return usecase.NewCatalogEditor(h.collection, usecase.EditorDeps{
		Store:        h.store,
		Objects:      h.objects,
		Reloader:     h.loader,
		Logger:       h.logger,
		UploadPrefix: h.uploadPrefix,
	})
}

// GET /
func (h *AdminCatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items any
		err   error
	)
	if h.collection == catalogdom.CollectionServices {
		items, err = h.loader.StoredServices(r.Context())
	} else {
		items, err = h.loader.StoredPortfolio(r.Context())
	}
	if err != nil {
		h.logger.Error("[admin_catalog] list failed", zap.String("collection", string(h.collection)), zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to load "+string(h.collection))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /new
func (h *AdminCatalogHandler) blank(w http.ResponseWriter, r *http.Request) {
	ed, err := h.newEditor()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ed.BeginCreate(h.count(r.Context()))
	writeJSON(w, http.StatusOK, ed.Draft())
}

// GET /options
func (h *AdminCatalogHandler) options(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, usecase.ServiceEditorOptions())
}

// GET /{id}/draft
func (h *AdminCatalogHandler) draft(w http.ResponseWriter, r *http.Request) {
	d, _, err := h.find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEditorErr(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// POST /
func (h *AdminCatalogHandler) create(w http.ResponseWriter, r *http.Request) {
	in, file, err := h.readInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ed, err := h.newEditor()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ed.BeginCreate(h.count(r.Context()))
	h.submit(w, r, ed, in, file, http.StatusCreated)
}

// PUT /{id}
func (h *AdminCatalogHandler) update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	d, count, err := h.find(r.Context(), id)
	if err != nil {
		writeEditorErr(w, err, nil)
		return
	}
	in, file, err := h.readInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ed, err := h.newEditor()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := ed.BeginEdit(id, d, count); err != nil {
		writeEditorErr(w, err, nil)
		return
	}
	h.submit(w, r, ed, in, file, http.StatusOK)
}

// DELETE /{id}?confirm=true
func (h *AdminCatalogHandler) delete(w http.ResponseWriter, r *http.Request) {
	ed, err := h.newEditor()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	confirmed := parseBool(r.URL.Query().Get("confirm"))
	var prompt string
	err = ed.Delete(r.Context(), chi.URLParam(r, "id"), func(p string) bool {
		prompt = p
		return confirmed
	})
	if errors.Is(err, usecase.ErrNotConfirmed) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  err.Error(),
			"prompt": prompt,
		})
		return
	}
	if err != nil {
		writeEditorErr(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminCatalogHandler) submit(
	w http.ResponseWriter,
	r *http.Request,
	ed *usecase.CatalogEditor,
	in draftInput,
	file *multipart.FileHeader,
	okCode int,
) {
	ctx := r.Context()
	_ = ed.Update(in.apply)

	if file != nil {
		f, err := file.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "cannot read image: "+err.Error())
			return
		}
		_, err = ed.UploadImage(ctx, file.Filename, file.Header.Get("Content-Type"), f)
		_ = f.Close()
		if err != nil {
			d := ed.Draft()
			writeEditorErr(w, err, &d)
			return
		}
	}

	// 失敗時に返す下書き（Submit 成功でリセットされる前に取っておく）
	d := ed.Draft()
	id, err := ed.Submit(ctx)
	if err != nil {
		writeEditorErr(w, err, &d)
		return
	}
	body := map[string]string{
		"id":         id,
		"collection": string(h.collection),
	}
	if h.collection == catalogdom.CollectionPortfolio && !catalogdom.IsKnownCategory(catalogdom.Category(strings.TrimSpace(d.Category))) {
		body["warning"] = "category is not a filter tab; the item is listed under All only"
	}
	writeJSON(w, okCode, body)
}

// readInput は JSON または multipart のボディを読みます。
func (h *AdminCatalogHandler) readInput(w http.ResponseWriter, r *http.Request) (draftInput, *multipart.FileHeader, error) {
	var in draftInput
	if !isMultipart(r) {
		if err := decodeJSON(w, r, &in); err != nil {
			return draftInput{}, nil, err
		}
		return in, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		return draftInput{}, nil, errors.New("invalid multipart form: " + err.Error())
	}
	in = draftFromForm(r.MultipartForm.Value)

	var file *multipart.FileHeader
	if fs := r.MultipartForm.File["image"]; len(fs) > 0 {
		file = fs[0]
	}
	return in, file, nil
}

// count は現在の件数です（サービスの order 既定値）。読めない場合は 0。
func (h *AdminCatalogHandler) count(ctx context.Context) int {
	docs, err := h.store.List(ctx, string(h.collection))
	if err != nil {
		h.logger.Warn("[admin_catalog] count failed", zap.String("collection", string(h.collection)), zap.Error(err))
		return 0
	}
	return len(docs)
}

// find は編集対象を読み出して下書きにします。件数も一緒に返します。
func (h *AdminCatalogHandler) find(ctx context.Context, id string) (catalogdom.Draft, int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.Draft{}, 0, catalogdom.ErrInvalidID
	}

	if h.collection == catalogdom.CollectionServices {
		items, err := h.loader.StoredServices(ctx)
		if err != nil {
			return catalogdom.Draft{}, 0, fmt.Errorf("%w: %w", errStoreUnavailable, err)
		}
		for _, s := range items {
			if s.ID == id {
				return catalogdom.DraftFromService(s), len(items), nil
			}
		}
		return catalogdom.Draft{}, 0, catalogdom.ErrNotFound
	}

	items, err := h.loader.StoredPortfolio(ctx)
	if err != nil {
		return catalogdom.Draft{}, 0, fmt.Errorf("%w: %w", errStoreUnavailable, err)
	}
	for _, p := range items {
		if p.ID == id {
			return catalogdom.DraftFromPortfolio(p), len(items), nil
		}
	}
	return catalogdom.Draft{}, 0, catalogdom.ErrNotFound
}

// エラーハンドリング
func writeEditorErr(w http.ResponseWriter, err error, draft *catalogdom.Draft) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalogdom.ErrRequiredField),
		errors.Is(err, catalogdom.ErrInvalidOrder),
		errors.Is(err, catalogdom.ErrInvalidID),
		errors.Is(err, common.ErrInvalidDocumentID):
		code = http.StatusBadRequest
	case errors.Is(err, catalogdom.ErrNotFound),
		errors.Is(err, common.ErrDocumentNotFound):
		code = http.StatusNotFound
	case errors.Is(err, usecase.ErrUploadInProgress):
		code = http.StatusConflict
	case errors.Is(err, usecase.ErrWriteFailed),
		errors.Is(err, usecase.ErrUploadFailed),
		errors.Is(err, errStoreUnavailable):
		code = http.StatusBadGateway
	}

	body := map[string]any{"error": err.Error()}
	if draft != nil {
		body["draft"] = draft
	}
	writeJSON(w, code, body)
}
