// Package auth は登録・ログイン・ベアラートークン認証のビジネスロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/token"
)

// CredentialStore は認証情報ストアのインターフェース。
// credential.Storeの部分集合として定義する。
type CredentialStore interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Verify(ctx context.Context, username, password string) (*model.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// TokenIssuer はトークン発行・検証のインターフェース。
type TokenIssuer interface {
	Issue(userID string, ttl time.Duration) (string, error)
	Verify(tokenString string) (string, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	TokenTTL time.Duration // 発行するトークンの有効期間
}

// Service は認証のサービス層。リクエストをまたぐ状態は持たない。
type Service struct {
	store  CredentialStore
	issuer TokenIssuer
	config ServiceConfig
}

// NewService はServiceを生成する。
func NewService(store CredentialStore, issuer TokenIssuer, config ServiceConfig) *Service {
	return &Service{store: store, issuer: issuer, config: config}
}

// Register はユーザーを登録する。
// DUPLICATE_IDENTITY / INVALID_CREDENTIALはそのまま伝播する。
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	return s.store.Register(ctx, username, password)
}

// Login は認証情報を照合し、成功時は設定されたTTLのトークンを発行する。
// 失敗時はユーザー不在・パスワード不一致を区別せずAUTH_FAILUREを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.store.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	tokenString, err := s.issuer.Issue(user.ID, s.config.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, tokenString, nil
}

// Authenticate はベアラートークンを検証し、ユーザーIDを返す。
// トークン自体が有効でもアカウントが削除済みの場合はACCOUNT_REMOVEDを返す。
func (s *Service) Authenticate(ctx context.Context, tokenString string) (string, error) {
	userID, err := s.issuer.Verify(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return "", model.NewTokenExpiredError()
		case errors.Is(err, token.ErrBadSignature):
			return "", model.NewTokenBadSignatureError()
		default:
			return "", model.NewTokenMalformedError()
		}
	}

	exists, err := s.store.Exists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return "", model.NewAccountRemovedError()
	}

	return userID, nil
}
