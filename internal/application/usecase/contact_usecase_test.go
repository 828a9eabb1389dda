package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactdom "github.com/Alanove07/designbynexa/internal/domain/contact"
)

type fakeContactMailer struct {
	mu            sync.Mutex
	confirmations []contactdom.Message
	notifications []contactdom.Message
	err           error
}

func (m *fakeContactMailer) SendContactConfirmation(_ context.Context, msg contactdom.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, msg)
	return m.err
}

func (m *fakeContactMailer) SendContactNotification(_ context.Context, msg contactdom.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, msg)
	return nil
}

func newTestContactUsecase(store *flakyStore, mailer ContactMailer) *ContactUsecase {
	u := NewContactUsecase(store, mailer, nil)
	u.now = func() time.Time { return time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC) }
	u.newID = func() string { return "msg-1" }
	return u
}

func TestContactUsecase_Submit(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	mailer := &fakeContactMailer{}
	u := newTestContactUsecase(store, mailer)

	res, err := u.Submit(ctx, contactdom.Message{Name: " Ann ", Email: "ann@example.com", Message: "Hello"})

	require.NoError(t, err)
	assert.Equal(t, ContactResult{ID: "msg-1", EmailSent: true}, res)

	docs, _ := store.List(ctx, contactdom.CollectionMessages)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ann", docs[0].Data["name"])
	assert.Equal(t, "msg-1", docs[0].Data["messageId"])

	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, "msg-1", mailer.confirmations[0].ID)
	assert.Len(t, mailer.notifications, 1)
}

func TestContactUsecase_ValidationFailsBeforeStore(t *testing.T) {
	store := newFlakyStore()
	u := newTestContactUsecase(store, &fakeContactMailer{})

	_, err := u.Submit(context.Background(), contactdom.Message{Name: "Ann", Email: "nope", Message: "x"})

	assert.ErrorIs(t, err, contactdom.ErrInvalidEmail)
	assert.Equal(t, 0, store.writeCount())
}

func TestContactUsecase_StoreFailure(t *testing.T) {
	store := newFlakyStore()
	store.failWrite = true
	mailer := &fakeContactMailer{}
	u := newTestContactUsecase(store, mailer)

	_, err := u.Submit(context.Background(), contactdom.Message{Name: "Ann", Email: "ann@example.com", Message: "x"})

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, mailer.confirmations)
}

func TestContactUsecase_EmailFailureStillSaves(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	u := newTestContactUsecase(store, &fakeContactMailer{err: errors.New("smtp down")})

	res, err := u.Submit(ctx, contactdom.Message{Name: "Ann", Email: "ann@example.com", Message: "x"})

	require.NoError(t, err)
	assert.False(t, res.EmailSent)
	docs, _ := store.List(ctx, contactdom.CollectionMessages)
	assert.Len(t, docs, 1)
}
