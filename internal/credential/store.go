// Package credential はユーザー認証情報の登録と照合を提供する。
// パスワードはbcryptハッシュのみを保存し、平文は保持しない。
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/repository"
)

// ユーザー名の長さ制限。
const (
	usernameMinLength = 3
	usernameMaxLength = 50
)

// StoreConfig は認証情報ストアの設定。
type StoreConfig struct {
	PasswordMinLength int // パスワードの最小文字数
	BcryptCost        int // bcryptのコストパラメータ
}

// Store はユーザー認証情報の登録・照合を行う。
type Store struct {
	userRepo  repository.UserRepository
	config    StoreConfig
	dummyHash []byte
}

// NewStore はStoreを生成する。
// ユーザー不在時の照合にも同等のbcrypt計算を行うため、ダミーハッシュを事前計算する。
func NewStore(userRepo repository.UserRepository, config StoreConfig) (*Store, error) {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("minimarket-dummy-password"), config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to precompute dummy hash: %w", err)
	}
	return &Store{userRepo: userRepo, config: config, dummyHash: dummy}, nil
}

// Register はユーザーを登録し、作成されたUserを返す。
// ユーザー名重複時はDUPLICATE_IDENTITY、ポリシー違反時はINVALID_CREDENTIALを返す。
// 重複判定と挿入のアトミック性はリポジトリ側で保証される。
func (s *Store) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if err := s.validate(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, model.NewDuplicateIdentityError(username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Verify はユーザー名とパスワードを照合し、一致したユーザーを返す。
// ユーザー不在とパスワード不一致はどちらも同一のAUTH_FAILUREを返す。
// 不在時もダミーハッシュとのbcrypt比較を行い、応答時間から存在が漏れないようにする。
func (s *Store) Verify(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, model.NewAuthFailureError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewAuthFailureError()
	}

	return user, nil
}

// Exists は指定IDのユーザーが存在するか判定する。
// トークン検証後のアカウント存在チェックに使用する。
func (s *Store) Exists(ctx context.Context, userID string) (bool, error) {
	return s.userRepo.ExistsByID(ctx, userID)
}

// validate はユーザー名・パスワードのポリシーを検査する。
func (s *Store) validate(username, password string) error {
	nameLen := utf8.RuneCountInString(username)
	if nameLen < usernameMinLength || nameLen > usernameMaxLength {
		return model.NewInvalidCredentialError(
			fmt.Sprintf("ユーザー名は%d〜%d文字で指定してください", usernameMinLength, usernameMaxLength))
	}
	if utf8.RuneCountInString(password) < s.config.PasswordMinLength {
		return model.NewInvalidCredentialError(
			fmt.Sprintf("パスワードは%d文字以上で指定してください", s.config.PasswordMinLength))
	}
	return nil
}
