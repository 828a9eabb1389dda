package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/Alanove07/designbynexa/internal/adapters/out/memstore"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

var errBoom = errors.New("boom")

// flakyStore は memstore に失敗注入を足したテスト用ストア
type flakyStore struct {
	*memstore.DocumentStore

	mu        sync.Mutex
	failList  bool
	failWrite bool
	lists     int
	writes    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{DocumentStore: memstore.NewDocumentStore()}
}

func (s *flakyStore) List(ctx context.Context, c string) ([]common.Document, error) {
	s.mu.Lock()
	s.lists++
	fail := s.failList
	s.mu.Unlock()
	if fail {
		return nil, errBoom
	}
	return s.DocumentStore.List(ctx, c)
}

func (s *flakyStore) Insert(ctx context.Context, c string, rec common.Record) (string, error) {
	if err := s.beforeWrite(); err != nil {
		return "", err
	}
	return s.DocumentStore.Insert(ctx, c, rec)
}

func (s *flakyStore) Update(ctx context.Context, c, id string, rec common.Record) error {
	if err := s.beforeWrite(); err != nil {
		return err
	}
	return s.DocumentStore.Update(ctx, c, id, rec)
}

func (s *flakyStore) Delete(ctx context.Context, c, id string) error {
	if err := s.beforeWrite(); err != nil {
		return err
	}
	return s.DocumentStore.Delete(ctx, c, id)
}

func (s *flakyStore) beforeWrite() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failWrite {
		return errBoom
	}
	return nil
}

func (s *flakyStore) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

func (s *flakyStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// failingObjects は常に Put が失敗する ObjectStore
type failingObjects struct{}

func (failingObjects) Put(context.Context, string, string, []byte) error { return errBoom }
func (failingObjects) PublicURL(key string) string                       { return "https://x/" + key }

// blockingObjects は release が閉じられるまで Put を止める ObjectStore
type blockingObjects struct {
	*memstore.ObjectStore
	started chan struct{}
	release chan struct{}
}

func newBlockingObjects() *blockingObjects {
	return &blockingObjects{
		ObjectStore: memstore.NewObjectStore("https://cdn.test"),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (b *blockingObjects) Put(ctx context.Context, key, ct string, data []byte) error {
	close(b.started)
	<-b.release
	return b.ObjectStore.Put(ctx, key, ct, data)
}

// recordingReloader は Reload 呼び出しを記録する
type recordingReloader struct {
	mu    sync.Mutex
	calls []catalogdom.Collection
}

func (r *recordingReloader) Reload(_ context.Context, c catalogdom.Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *recordingReloader) Calls() []catalogdom.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]catalogdom.Collection(nil), r.calls...)
}
