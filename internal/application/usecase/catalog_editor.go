// internal/application/usecase/catalog_editor.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

// Editor errors
var (
	ErrEditorClosed     = errors.New("editor: not open")
	ErrUploadInProgress = errors.New("editor: image upload in progress")
	ErrUploadFailed     = errors.New("editor: image upload failed")
	ErrWriteFailed      = errors.New("editor: store write failed")
	ErrNotConfirmed     = errors.New("editor: delete not confirmed")
)

// EditorMode は編集フォームの状態です。
type EditorMode int

const (
	ModeClosed EditorMode = iota
	ModeCreating
	ModeEditing
)

func (m EditorMode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "closed"
	}
}

// ConfirmFunc は削除前の確認です。true のときだけ削除します。
type ConfirmFunc func(prompt string) bool

// EditorDeps は CatalogEditor の依存関係です。
type EditorDeps struct {
	Store    catalogdom.Store
	Objects  catalogdom.ObjectStore
	Reloader Reloader
	Logger   *zap.Logger

	// 画像アップロード先のプレフィックス（空ならコレクション既定: portfolio / services）
	UploadPrefix string
}

// CatalogEditor は 1 コレクション分の管理画面編集フォームです。
//
// 1 つのフォームに対して 1 インスタンスを使います（HTTP では 1 リクエストごと）。
// 状態は mu で保護し、アップロード中は Submit を拒否します。
type CatalogEditor struct {
	collection catalogdom.Collection
	store      catalogdom.Store
	objects    catalogdom.ObjectStore
	reloader   Reloader
	logger     *zap.Logger
	prefix     string
	now        func() time.Time

	mu        sync.Mutex
	mode      EditorMode
	editingID string
	existing  int
	draft     catalogdom.Draft
	uploads   int
}

func NewCatalogEditor(c catalogdom.Collection, deps EditorDeps) (*CatalogEditor, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", catalogdom.ErrInvalidCollection, c)
	}
	if deps.Store == nil {
		return nil, errors.New("editor: store is nil")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := strings.Trim(strings.TrimSpace(deps.UploadPrefix), "/")
	if prefix == "" {
		prefix = defaultUploadPrefix(c)
	}
	return &CatalogEditor{
		collection: c,
		store:      deps.Store,
		objects:    deps.Objects,
		reloader:   deps.Reloader,
		logger:     logger.Named("catalog_editor").With(zap.String("collection", string(c))),
		prefix:     prefix,
		now:        time.Now,
	}, nil
}

func defaultUploadPrefix(c catalogdom.Collection) string {
	if c == catalogdom.CollectionServices {
		return "services"
	}
	return "portfolio"
}

// Collection は編集対象のコレクションです。
func (e *CatalogEditor) Collection() catalogdom.Collection { return e.collection }

// ==============================
// Form state
// ==============================

// BeginCreate は新規作成モードでフォームを開きます。
// existingCount は現在の件数で、サービスの order 既定値に使います。
func (e *CatalogEditor) BeginCreate(existingCount int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeCreating
	e.editingID = ""
	e.existing = existingCount
	e.draft = e.blankDraft(existingCount)
}

// BeginEdit は既存アイテムの編集モードでフォームを開きます。
func (e *CatalogEditor) BeginEdit(id string, d catalogdom.Draft, existingCount int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.ErrInvalidID
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeEditing
	e.editingID = id
	e.existing = existingCount
	e.draft = d
	return nil
}

// Cancel はフォームを閉じて下書きを初期化します。
func (e *CatalogEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Mode は現在のモードと編集中の ID を返します。
func (e *CatalogEditor) Mode() (EditorMode, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode, e.editingID
}

// Draft は現在の下書きのコピーを返します。
func (e *CatalogEditor) Draft() catalogdom.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Update は下書きを書き換えます（フォーム入力）。
func (e *CatalogEditor) Update(fn func(d *catalogdom.Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeClosed {
		return ErrEditorClosed
	}
	fn(&e.draft)
	return nil
}

func (e *CatalogEditor) blankDraft(existingCount int) catalogdom.Draft {
	if e.collection == catalogdom.CollectionServices {
		return catalogdom.NewServiceDraft(existingCount)
	}
	return catalogdom.NewPortfolioDraft()
}

func (e *CatalogEditor) resetLocked() {
	e.mode = ModeClosed
	e.editingID = ""
	e.draft = e.blankDraft(e.existing)
}

// ==============================
// Image upload
// ==============================

// UploadImage は画像をオブジェクトストアに保存し、公開 URL を下書きの画像欄に入れます。
// キーは "<prefix>/<unixMillis>_<filename>"。失敗時は下書きを変更しません。
func (e *CatalogEditor) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if e.objects == nil {
		return "", fmt.Errorf("%w: object store not configured", ErrUploadFailed)
	}
	name := uploadFileName(filename)
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", ErrUploadFailed)
	}

	e.mu.Lock()
	if e.mode == ModeClosed {
		e.mu.Unlock()
		return "", ErrEditorClosed
	}
	e.uploads++
	key := e.prefix + "/" + strconv.FormatInt(e.now().UnixMilli(), 10) + "_" + name
	e.mu.Unlock()

	url, err := e.put(ctx, key, contentType, r)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.uploads--
	if err != nil {
		e.logger.Error("[catalog_editor] upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	// 送信済み / キャンセル済みのフォームには反映しない
	if e.mode != ModeClosed {
		if e.collection == catalogdom.CollectionServices {
			e.draft.Icon = url
		} else {
			e.draft.ImageURL = url
		}
	}
	e.logger.Info("[catalog_editor] uploaded image", zap.String("key", key))
	return url, nil
}

func (e *CatalogEditor) put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := e.objects.Put(ctx, key, contentType, data); err != nil {
		return "", err
	}
	return e.objects.PublicURL(key), nil
}

// uploadFileName はクライアントのファイル名からディレクトリ部分を落とします。
func uploadFileName(filename string) string {
	name := strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// ==============================
// Submit / Delete
// ==============================

// Submit は下書きをストアに書き込みます。
//   - Creating: Insert（ID はストア採番、portfolio は createdAt = ServerTimestamp）
//   - Editing : ID をキーに全体上書き（元の createdAt を引き継ぐ）
//
// 成功時はフォームを閉じてローダーを再読込し、書き込んだ ID を返します。
// 失敗時は下書きを保持したまま ErrWriteFailed を返します。
func (e *CatalogEditor) Submit(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.mode == ModeClosed:
		return "", ErrEditorClosed
	case e.uploads > 0:
		return "", ErrUploadInProgress
	}
	if err := e.draft.Validate(); err != nil {
		return "", err
	}

	rec, err := e.recordLocked()
	if err != nil {
		return "", err
	}

	id := e.editingID
	if e.mode == ModeEditing {
		err = e.store.Update(ctx, string(e.collection), id, rec)
	} else {
		id, err = e.store.Insert(ctx, string(e.collection), rec)
	}
	if err != nil {
		e.logger.Error("[catalog_editor] write failed",
			zap.String("mode", e.mode.String()),
			zap.String("id", id),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	e.logger.Info("[catalog_editor] saved", zap.String("mode", e.mode.String()), zap.String("id", id))
	e.resetLocked()
	e.reload(ctx)
	return id, nil
}

func (e *CatalogEditor) recordLocked() (catalogdom.Record, error) {
	if e.collection == catalogdom.CollectionServices {
		s, err := e.draft.Service(e.editingID, e.existing)
		if err != nil {
			return nil, err
		}
		return catalogdom.EncodeService(s), nil
	}

	item := e.draft.PortfolioItem(e.editingID)
	if !catalogdom.IsKnownCategory(item.Category) {
		e.logger.Warn("[catalog_editor] unknown category; item is listed under All only",
			zap.String("category", string(item.Category)),
		)
	}
	rec := catalogdom.EncodePortfolioItem(item)
	if e.mode == ModeCreating {
		rec = catalogdom.WithServerCreatedAt(rec)
	}
	return rec, nil
}

// Delete は confirm が true を返した場合だけ削除します。
// 失敗時はログを出してエラーを返します（一覧からの先行削除はしません）。
func (e *CatalogEditor) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalogdom.ErrInvalidID
	}
	if confirm == nil || !confirm(e.deletePrompt()) {
		return ErrNotConfirmed
	}

	if err := e.store.Delete(ctx, string(e.collection), id); err != nil {
		e.logger.Error("[catalog_editor] delete failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	e.logger.Info("[catalog_editor] deleted", zap.String("id", id))
	e.reload(ctx)
	return nil
}

func (e *CatalogEditor) deletePrompt() string {
	if e.collection == catalogdom.CollectionServices {
		return "Are you sure you want to delete this service?"
	}
	return "Are you sure you want to delete this item?"
}

func (e *CatalogEditor) reload(ctx context.Context) {
	if e.reloader != nil {
		e.reloader.Reload(ctx, e.collection)
	}
}

// ==============================
// Service form options
// ==============================

// ServiceOptions はサービス編集フォームの選択肢です。
type ServiceOptions struct {
	Icons  []string                 `json:"icons"`
	Colors []catalogdom.ColorOption `json:"colors"`
}

func ServiceEditorOptions() ServiceOptions {
	icons := make([]string, len(catalogdom.ServiceIcons))
	copy(icons, catalogdom.ServiceIcons)
	colors := make([]catalogdom.ColorOption, len(catalogdom.ServiceColors))
	copy(colors, catalogdom.ServiceColors)
	return ServiceOptions{Icons: icons, Colors: colors}
}
