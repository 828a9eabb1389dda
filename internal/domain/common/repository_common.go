// internal/domain/common/repository_common.go
package common

import (
	"context"
	"errors"
)

// Record はドキュメントストアに書き込むフラットな key/value 表現です。
// スキーマはストア側では強制しません（書き込む側が形を決める）。
type Record map[string]any

// Document は ID 付きで読み出されたレコードです。
type Document struct {
	ID   string
	Data Record
}

// serverTimestamp はストア側の時刻で置き換えるためのマーカー型
type serverTimestamp struct{}

// ServerTimestamp を Record の値に入れると、各ストア実装が
// 自身のサーバ時刻（Firestore: ServerTimestamp / Postgres: now()）に置き換えます。
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp は v が ServerTimestamp マーカーかどうかを返します。
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// 代表エラー（契約）
var (
	ErrDocumentNotFound  = errors.New("document: not found")
	ErrInvalidDocumentID = errors.New("document: invalid id")
	ErrInvalidCollection = errors.New("document: invalid collection")
)

// DocumentStore はコレクション単位の薄い CRUD 契約です。
//   - List   : コレクション内の全ドキュメント（ストアが返した順序のまま）
//   - Insert : ID はストアが採番して返す
//   - Update : ID をキーにしたレコード全体の上書き（部分更新ではない）
//   - Delete : ID 指定の削除
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	Update(ctx context.Context, collection string, id string, rec Record) error
	Delete(ctx context.Context, collection string, id string) error
}

// DocumentSetter は ID を指定した保存（存在すれば上書き）です。
// 通常の書き込みは DocumentStore を使い、これは seed など ID が決まっているデータ投入用です。
type DocumentSetter interface {
	Set(ctx context.Context, collection, id string, rec Record) error
}

// ObjectStore は公開 URL で取得できる blob ストアです。
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	PublicURL(key string) string
}
