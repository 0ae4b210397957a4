// Package contact はお問い合わせフォームのドメインロジックを提供する。
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/repository"
	"github.com/hitoshi/minimarket/internal/security"
)

// メッセージ本文の最大文字数。
const messageMaxLength = 4000

// Service はお問い合わせ受付のサービス層。
type Service struct {
	contactRepo repository.ContactRepository
	sanitizer   security.TextSanitizerService
}

// NewService はServiceを生成する。
func NewService(contactRepo repository.ContactRepository, sanitizer security.TextSanitizerService) *Service {
	return &Service{contactRepo: contactRepo, sanitizer: sanitizer}
}

// Submit はお問い合わせメッセージを検証・サニタイズして保存する。
// 保存したメッセージ（受信時刻付き）を返す。
// メールアドレスはHTMLサニタイズではなくアドレス構文の解析で検証し、
// 表示名を取り除いた正規化済みアドレスのみを保存する。
func (s *Service) Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	name = s.sanitizer.Sanitize(name)
	message = s.sanitizer.Sanitize(message)

	if name == "" {
		return nil, model.NewInvalidRequestError("名前を入力してください")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, model.NewInvalidRequestError("メールアドレスの形式が不正です")
	}
	email = addr.Address
	if message == "" {
		return nil, model.NewInvalidRequestError("メッセージを入力してください")
	}
	if utf8.RuneCountInString(message) > messageMaxLength {
		return nil, model.NewInvalidRequestError(
			fmt.Sprintf("メッセージは%d文字以内で入力してください", messageMaxLength))
	}

	msg := &model.ContactMessage{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Message:    message,
		ReceivedAt: time.Now(),
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("お問い合わせの保存に失敗しました: %w", err)
	}

	slog.Info("contact message received",
		slog.String("id", msg.ID),
	)

	return msg, nil
}
