// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/repository"
)

// CartDeleter はカートの一括削除インターフェース。
type CartDeleter interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// Service はユーザー管理のサービス層。退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	cartDeleter CartDeleter
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, cartDeleter CartDeleter) *Service {
	return &Service{userRepo: userRepo, cartDeleter: cartDeleter}
}

// GetByID は指定IDのユーザーを返す。削除済みの場合はACCOUNT_REMOVEDを返す。
func (s *Service) GetByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewAccountRemovedError()
	}
	return user, nil
}

// Withdraw はユーザーの退会処理を実行する。
// 削除順序: cart_items → user。
// 発行済みトークンはステートレスなため失効しないが、以降の認証は
// アカウント存在チェックでACCOUNT_REMOVEDとして拒否される。
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewAccountRemovedError()
	}

	slog.Info("退会処理を開始します",
		slog.String("user_id", userID),
	)

	// 1. カートを削除
	if s.cartDeleter != nil {
		if err := s.cartDeleter.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("カートの削除に失敗しました: %w", err)
		}
	}

	// 2. ユーザーを削除
	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("user_id", userID),
	)

	return nil
}
