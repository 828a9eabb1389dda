// internal/application/usecase/contact_usecase.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
	contactdom "github.com/Alanove07/designbynexa/internal/domain/contact"
)

// ContactMailer は問い合わせ受付時のメール送信ポートです。
type ContactMailer interface {
	SendContactConfirmation(ctx context.Context, msg contactdom.Message) error
	SendContactNotification(ctx context.Context, msg contactdom.Message) error
}

// ContactResult は問い合わせ送信の結果です。
type ContactResult struct {
	ID string `json:"id"`
	// EmailSent は確認メール・通知メールがすべて送れたかどうか
	EmailSent bool `json:"emailSent"`
}

type ContactUsecase struct {
	store  common.DocumentStore
	mailer ContactMailer
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewContactUsecase(store common.DocumentStore, mailer ContactMailer, logger *zap.Logger) *ContactUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactUsecase{
		store:  store,
		mailer: mailer,
		logger: logger.Named("contact"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Submit は問い合わせを検証して保存し、確認メールと通知メールを送ります。
// 保存に失敗した場合だけエラーを返します。メール送信の失敗はログに残し EmailSent=false で返します。
func (u *ContactUsecase) Submit(ctx context.Context, in contactdom.Message) (ContactResult, error) {
	msg := in.Normalize()
	if err := msg.Validate(); err != nil {
		return ContactResult{}, err
	}
	msg.ID = u.newID()
	msg.CreatedAt = u.now().UTC()

	if _, err := u.store.Insert(ctx, contactdom.CollectionMessages, msg.Record()); err != nil {
		u.logger.Error("[contact] store failed", zap.String("messageId", msg.ID), zap.Error(err))
		return ContactResult{}, fmt.Errorf("save contact message: %w", err)
	}

	res := ContactResult{ID: msg.ID, EmailSent: true}
	if u.mailer == nil {
		res.EmailSent = false
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return u.mailer.SendContactConfirmation(gctx, msg) })
	g.Go(func() error { return u.mailer.SendContactNotification(gctx, msg) })
	if err := g.Wait(); err != nil {
		u.logger.Warn("[contact] email failed", zap.String("messageId", msg.ID), zap.Error(err))
		res.EmailSent = false
	}

	u.logger.Info("[contact] message received", zap.String("messageId", msg.ID), zap.Bool("emailSent", res.EmailSent))
	return res, nil
}
